package utils

import (
	"sync"
	"time"
)

// Lista negra de tokens para logout. Un token revocado queda bloqueado
// hasta su expiración natural.

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

func BlacklistToken(token string, hasta time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = hasta
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	hasta, exists := blacklistedTokens[token]
	blacklistMutex.RUnlock()

	if !exists {
		return false
	}
	if time.Now().Before(hasta) {
		return true
	}

	blacklistMutex.Lock()
	delete(blacklistedTokens, token)
	blacklistMutex.Unlock()
	return false
}

// StartBlacklistCleanup purga entradas expiradas cada hora.
func StartBlacklistCleanup() {
	go func() {
		for {
			time.Sleep(1 * time.Hour)
			blacklistMutex.Lock()
			now := time.Now()
			for token, hasta := range blacklistedTokens {
				if now.After(hasta) {
					delete(blacklistedTokens, token)
				}
			}
			blacklistMutex.Unlock()
		}
	}()
}
