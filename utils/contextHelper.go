package utils

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/appctx"
)

func GetGarageIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyGarageId)
}

func SetGarageIdInContext(ctx context.Context, garageId string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyGarageId, garageId)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, appctx.ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, appctx.ContextKeyCorrelationId, correlationId)
}

func GetSkipGarageScopeFromContext(ctx context.Context) (bool, bool) {
	return appctx.GetBool(ctx, appctx.ContextKeySkipGarageScope)
}

func SetSkipGarageScopeInContext(ctx context.Context, skip bool) context.Context {
	return appctx.Set(ctx, appctx.ContextKeySkipGarageScope, skip)
}
