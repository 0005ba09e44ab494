package service

import (
	"hash/fnv"
	"strings"
	"sync"

	"wallet_client/internal/models"
)

const numShards = 16

type directoryShard struct {
	mu      sync.RWMutex
	wallets map[string]models.Wallet
}

// Directory indexes the known transfer recipients by account number.
type Directory struct {
	shards [numShards]*directoryShard
}

func NewDirectory() *Directory {
	d := &Directory{}
	for i := 0; i < numShards; i++ {
		d.shards[i] = &directoryShard{wallets: make(map[string]models.Wallet)}
	}
	return d
}

func normalizeAccount(account string) string {
	return strings.TrimSpace(account)
}

func shardIndex(account string) uint64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(account))
	return hasher.Sum64() & (numShards - 1)
}

func (d *Directory) getShard(account string) *directoryShard {
	return d.shards[shardIndex(account)]
}

// Replace swaps the whole directory for the given wallets.
func (d *Directory) Replace(wallets []models.Wallet) {
	fresh := make([]map[string]models.Wallet, numShards)
	for i := range fresh {
		fresh[i] = make(map[string]models.Wallet)
	}
	for _, w := range wallets {
		account := normalizeAccount(w.AccountNumber)
		if account == "" {
			continue
		}
		fresh[shardIndex(account)][account] = w
	}
	for i, shard := range d.shards {
		shard.mu.Lock()
		shard.wallets = fresh[i]
		shard.mu.Unlock()
	}
}

func (d *Directory) Lookup(account string) (models.Wallet, bool) {
	account = normalizeAccount(account)
	shard := d.getShard(account)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	w, ok := shard.wallets[account]
	return w, ok
}

func (d *Directory) Len() int {
	total := 0
	for _, shard := range d.shards {
		shard.mu.RLock()
		total += len(shard.wallets)
		shard.mu.RUnlock()
	}
	return total
}
