package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"lunchly/internal/domain/customer"
	"lunchly/internal/domain/reservation"
	"lunchly/internal/pkg/apperrors"
)

const (
	selectCustomerByIDQuery = `SELECT id, first_name, last_name, COALESCE(phone, '') AS phone, COALESCE(notes, '') AS notes
FROM customers
WHERE id = $1`

	selectAllCustomersQuery = `SELECT id, first_name, last_name, COALESCE(phone, '') AS phone, COALESCE(notes, '') AS notes
FROM customers
ORDER BY last_name, first_name`

	searchCustomersQuery = `SELECT id, first_name, last_name, COALESCE(phone, '') AS phone, COALESCE(notes, '') AS notes
FROM customers
WHERE customer_tokens @@ to_tsquery($1)
ORDER BY last_name, first_name`

	bestCustomersQuery = `SELECT cust.id, cust.first_name, cust.last_name, COALESCE(cust.phone, '') AS phone, COALESCE(cust.notes, '') AS notes
FROM reservations AS res
JOIN customers AS cust ON res.customer_id = cust.id
GROUP BY cust.id, cust.first_name, cust.last_name, cust.phone, cust.notes
ORDER BY count(*) DESC, cust.id ASC
LIMIT $1`

	insertCustomerQuery = `INSERT INTO customers (first_name, last_name, phone, notes, customer_tokens)
VALUES ($1, $2, $3, $4, to_tsvector($5))
RETURNING id`

	updateCustomerQuery = `UPDATE customers
SET first_name = $1, last_name = $2, phone = $3, notes = $4, customer_tokens = to_tsvector($5)
WHERE id = $6`

	countCustomersQuery = `SELECT count(*) FROM customers`
)

type CustomerRepository struct {
	db           DBPool
	reservations reservation.Repository
	logger       *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, reservations reservation.Repository, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if reservations == nil {
		panic("reservation repository cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:           db,
		reservations: reservations,
		logger:       logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Get(ctx context.Context, customerID int64) (cust *customer.Customer, err error) {
	defer func(start time.Time) { observe("GetCustomer", start, err) }(time.Now())
	logger := r.logger.With(slog.Int64("customerID", customerID))

	customers, err := r.queryCustomers(ctx, "get customer", selectCustomerByIDQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to query customer by ID", slog.Any("error", err))
		return nil, err
	}
	if len(customers) == 0 {
		logger.WarnContext(ctx, "Customer not found")
		return nil, apperrors.NewNotFoundError("customer", customerID)
	}

	return customers[0], nil
}

func (r *CustomerRepository) All(ctx context.Context) (customers []*customer.Customer, err error) {
	defer func(start time.Time) { observe("ListCustomers", start, err) }(time.Now())

	customers, err = r.queryCustomers(ctx, "list customers", selectAllCustomersQuery)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to list customers", slog.Any("error", err))
		return nil, err
	}
	return customers, nil
}

// SearchByName expects query in to_tsquery syntax.
func (r *CustomerRepository) SearchByName(ctx context.Context, query string) (customers []*customer.Customer, err error) {
	defer func(start time.Time) { observe("SearchCustomers", start, err) }(time.Now())

	customers, err = r.queryCustomers(ctx, "search customers", searchCustomersQuery, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to search customers", slog.String("query", query), slog.Any("error", err))
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepository) BestCustomers(ctx context.Context) (customers []*customer.Customer, err error) {
	defer func(start time.Time) { observe("BestCustomers", start, err) }(time.Now())

	customers, err = r.queryCustomers(ctx, "best customers", bestCustomersQuery, customer.BestCustomersLimit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query best customers", slog.Any("error", err))
		return nil, err
	}

	if r.logger.Enabled(ctx, slog.LevelDebug) {
		ids := make([]int64, 0, len(customers))
		for _, c := range customers {
			ids = append(ids, c.CustomerID)
		}
		r.logger.DebugContext(ctx, "Best customers raw result", slog.Any("customer_ids", ids), slog.Int("count", len(customers)))
	}

	return customers, nil
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}
	if cust.IsPersisted() {
		return r.update(ctx, cust)
	}
	return r.insert(ctx, cust)
}

func (r *CustomerRepository) insert(ctx context.Context, cust *customer.Customer) (err error) {
	defer func(start time.Time) { observe("InsertCustomer", start, err) }(time.Now())

	var id int64
	err = r.db.QueryRow(ctx, insertCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
		cust.FullName(),
	).Scan(&id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return wrapDBError(err, "failed to insert customer", r.logger)
	}

	cust.CustomerID = id
	r.logger.InfoContext(ctx, "Customer inserted", slog.Int64("customerID", id))
	return nil
}

func (r *CustomerRepository) update(ctx context.Context, cust *customer.Customer) (err error) {
	defer func(start time.Time) { observe("UpdateCustomer", start, err) }(time.Now())
	logger := r.logger.With(slog.Int64("customerID", cust.CustomerID))

	cmdTag, err := r.db.Exec(ctx, updateCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.Phone,
		cust.Notes,
		cust.FullName(),
		cust.CustomerID,
	)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return wrapDBError(err, "failed to update customer", logger)
	}
	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Update matched no customer")
		return apperrors.NewNotFoundError("customer", cust.CustomerID)
	}

	logger.InfoContext(ctx, "Customer updated")
	return nil
}

// GetReservations hands the lookup to the reservation repository and returns
// its result unchanged.
func (r *CustomerRepository) GetReservations(ctx context.Context, cust *customer.Customer) ([]*reservation.Reservation, error) {
	if cust == nil || !cust.IsPersisted() {
		return nil, fmt.Errorf("%w: reservations need a persisted customer", apperrors.ErrInvalidArgument)
	}
	return r.reservations.GetReservationsForCustomer(ctx, cust.CustomerID)
}

func (r *CustomerRepository) Count(ctx context.Context) (total int64, err error) {
	defer func(start time.Time) { observe("CountCustomers", start, err) }(time.Now())

	if err = r.db.QueryRow(ctx, countCustomersQuery).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, "failed to count customers", err)
	}
	return total, nil
}

func (r *CustomerRepository) queryCustomers(ctx context.Context, action, query string, args ...any) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, "failed to "+action, r.logger)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, cust)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, "failed iterating "+action+" rows", err)
	}

	return customers, nil
}
