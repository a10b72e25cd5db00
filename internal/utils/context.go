package utils

import "context"

type contextKey string

const (
	CustomerIDKey    contextKey = "customer_id"
	CustomerEmailKey contextKey = "email"
	CustomerRoleKey  contextKey = "role"
)

// SetCustomerContext sets customer info into context (called by middleware)
func SetCustomerContext(ctx context.Context, id string, email string, role string) context.Context {
	ctx = context.WithValue(ctx, CustomerIDKey, id)
	ctx = context.WithValue(ctx, CustomerEmailKey, email)
	ctx = context.WithValue(ctx, CustomerRoleKey, role)
	return ctx
}

// GetCustomerIDFromContext retrieves the customer ID safely
func GetCustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CustomerIDKey).(string)
	return id, ok && id != ""
}

func GetCustomerEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(CustomerEmailKey).(string)
	return email
}

func GetCustomerRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(CustomerRoleKey).(string)
	return role
}
