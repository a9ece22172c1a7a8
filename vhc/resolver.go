package vhc

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmdatafocus/workshop_backend/config"
)

// Resolver maps a human-facing display id to the store's canonical VHC item
// id. A miss is a normal outcome ("nothing to resolve"), never an error.
type Resolver struct {
	store AliasStore
}

func NewResolver(store AliasStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns (canonicalId, true) when the display id resolves, and
// (0, false) when there is nothing to resolve. An error is returned only
// when the alias lookup itself fails.
func (r *Resolver) Resolve(ctx context.Context, jobId int, displayId string) (int, bool, error) {
	displayId = strings.TrimSpace(displayId)
	if displayId == "" {
		return 0, false, nil
	}

	id, found, err := r.store.LookupAlias(ctx, jobId, displayId)
	if err != nil {
		return 0, false, resolutionFailure("vhc alias lookup", err)
	}
	if found {
		return id, true, nil
	}

	// Legacy convention: unaliased numeric display ids are already canonical.
	if n, err := strconv.Atoi(displayId); err == nil && n > 0 {
		return n, true, nil
	}
	return 0, false, nil
}

// AliasMap loads the job's full alias table, Redis cache-aside. Read paths
// resolve against this map so identity resolution happens exactly once per
// logical operation.
func (r *Resolver) AliasMap(ctx context.Context, jobId int) (map[string]int, error) {
	aliasMap := make(map[string]int)
	redisKey := aliasCacheKey(jobId)
	exists, err := config.GetRedisObject(redisKey, &aliasMap)
	if err != nil {
		return nil, resolutionFailure("vhc alias cache read", err)
	}
	if exists {
		return aliasMap, nil
	}

	aliasMap, err = r.store.AliasesForJob(ctx, jobId)
	if err != nil {
		return nil, resolutionFailure("vhc alias table read", err)
	}
	if err := config.SetRedisObject(redisKey, &aliasMap, 0); err != nil {
		return nil, resolutionFailure("vhc alias cache write", err)
	}
	return aliasMap, nil
}

// InvalidateAliasCache drops the cached alias map for a job. Capture flows
// call this after appending aliases.
func InvalidateAliasCache(jobId int) error {
	return config.RemoveRedisKey(aliasCacheKey(jobId))
}

func aliasCacheKey(jobId int) string {
	return "vhcAliasMap:" + fmt.Sprint(jobId)
}

// ResolveWithMap is the pure in-memory variant used by the assembler: exact
// alias-map match first, then the numeric-id fallback.
func ResolveWithMap(aliasMap map[string]int, displayId string) (int, bool) {
	displayId = strings.TrimSpace(displayId)
	if displayId == "" {
		return 0, false
	}
	if id, ok := aliasMap[displayId]; ok && id > 0 {
		return id, true
	}
	if n, err := strconv.Atoi(displayId); err == nil && n > 0 {
		return n, true
	}
	return 0, false
}
