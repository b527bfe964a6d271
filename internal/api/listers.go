package api

import (
	"context"

	"github.com/plalonde/sensorctl/internal/bulk"
	"github.com/plalonde/sensorctl/internal/client"
	"github.com/plalonde/sensorctl/internal/resource"
	"github.com/plalonde/sensorctl/internal/verify"
)

// Reader is the read-only client surface the listers need.
type Reader = verify.Reader

// SessionListers enumerates agent orchestrator sessions as bulk targets.
func SessionListers(r Reader) []bulk.Lister {
	return []bulk.Lister{
		func(ctx context.Context) ([]resource.Ref, error) {
			payload, err := r.Read(ctx, SessionsPath)
			if err != nil {
				return nil, err
			}
			var list SessionList
			if err := Decode(payload, &list); err != nil {
				return nil, err
			}
			ids := list.SessionIDs()
			refs := make([]resource.Ref, 0, len(ids))
			for _, id := range ids {
				refs = append(refs, resource.NewRef(id, resource.KindSession, 3, SessionPath(id)))
			}
			return refs, nil
		},
	}
}

// PolicyListers enumerates alerting policies on both surface versions, in
// ascending version order so the orchestrator prefers v3 delete endpoints
// for policies visible on both.
func PolicyListers(r Reader) []bulk.Lister {
	return []bulk.Lister{
		policyLister(r, PoliciesV2Path, 2, PolicyV2Path),
		policyLister(r, PoliciesV3Path, 3, PolicyV3DeletePath),
	}
}

func policyLister(r Reader, listPath string, version int, deletePath func(string) string) bulk.Lister {
	return func(ctx context.Context) ([]resource.Ref, error) {
		payload, err := r.Read(ctx, listPath)
		if err != nil {
			return nil, err
		}
		var list PolicyList
		if err := Decode(payload, &list); err != nil {
			return nil, err
		}
		refs := make([]resource.Ref, 0, len(list.Data))
		for _, policy := range list.Data {
			if policy.ID == "" {
				continue
			}
			refs = append(refs, resource.NewRef(policy.ID, resource.KindPolicy, version, deletePath(policy.ID)))
		}
		return refs, nil
	}
}

var _ Reader = (*client.Client)(nil)
