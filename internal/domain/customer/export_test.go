package customer

var BuildTokenQuery = buildTokenQuery
