package service

import (
	"context"
	"errors"
	"sync"

	"supervault_dashboard/internal/domain/entity"
)

type fakePricing struct {
	mu sync.Mutex

	vaults    map[string]*entity.VaultList
	details   map[string]*entity.VaultDetails
	pps       *entity.PPSResponse
	vaultsErr error
	vaultErr  error
	healthy   bool

	getVaultCalls  []string
	clearedVaults  []string
	clearedAll     int
	requestedBlock *uint64
}

func newFakePricing() *fakePricing {
	return &fakePricing{
		vaults:  make(map[string]*entity.VaultList),
		details: make(map[string]*entity.VaultDetails),
	}
}

func (f *fakePricing) GetAllVaults(_ context.Context, chainID string) (*entity.VaultList, error) {
	if f.vaultsErr != nil {
		return nil, f.vaultsErr
	}
	if l, ok := f.vaults[chainID]; ok {
		return l, nil
	}
	return &entity.VaultList{}, nil
}

func (f *fakePricing) GetPPS(_ context.Context, _, _ string, block *uint64) (*entity.PPSResponse, error) {
	f.requestedBlock = block
	if f.pps == nil {
		return nil, errors.New("no pps")
	}
	return f.pps, nil
}

func (f *fakePricing) GetVault(_ context.Context, chainID, vault string, block *uint64) (*entity.VaultDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getVaultCalls = append(f.getVaultCalls, chainID+":"+vault)
	f.requestedBlock = block
	if f.vaultErr != nil {
		return nil, f.vaultErr
	}
	if d, ok := f.details[vault]; ok {
		return d, nil
	}
	return nil, errors.New("vault not found")
}

func (f *fakePricing) HealthCheck(context.Context) bool { return f.healthy }

func (f *fakePricing) ClearCache(context.Context) { f.clearedAll++ }

func (f *fakePricing) ClearVaultCache(_ context.Context, chainID, vault string) {
	f.clearedVaults = append(f.clearedVaults, chainID+":"+vault)
}

type fakeHeads struct {
	head uint64
	ok   bool
	err  error
}

func (h fakeHeads) LatestBlock(context.Context, string) (uint64, bool, error) {
	return h.head, h.ok, h.err
}

type fakeWatchlist struct {
	vaults []entity.WatchedVault
	err    error
}

func (w fakeWatchlist) GetWatchedVaults() ([]entity.WatchedVault, error) {
	return w.vaults, w.err
}

func unixTime(v int64) *int64 { return &v }
