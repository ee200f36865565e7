package watchlistloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"supervault_dashboard/internal/domain/entity"
)

// WatchlistFileLoader implements the port.WatchlistProvider interface by loading
// "chain_id,vault_address" lines from a file.
type WatchlistFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWatchlistFileLoader creates a new WatchlistFileLoader. An empty path yields an empty watchlist.
func NewWatchlistFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *WatchlistFileLoader {
	return &WatchlistFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetWatchedVaults reads the watchlist. Malformed lines are skipped; duplicate
// entries are reported once.
func (l *WatchlistFileLoader) GetWatchedVaults() ([]entity.WatchedVault, error) {
	if l.filePath == "" {
		return nil, nil
	}

	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var vaults []entity.WatchedVault
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		chainID, address, found := strings.Cut(line, ",")
		chainID = strings.TrimSpace(chainID)
		address = strings.TrimSpace(address)
		if !found || chainID == "" || !common.IsHexAddress(address) {
			l.info("Skipping invalid watchlist entry", "file", l.filePath, "line_number", lineNum, "entry", line)
			continue
		}

		address = common.HexToAddress(address).Hex()
		key := chainID + ":" + address
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		vaults = append(vaults, entity.WatchedVault{ChainID: chainID, Address: address})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning watchlist file %s: %w", l.filePath, err)
	}

	l.info("Watchlist loaded successfully from file", "count", len(vaults), "path", l.filePath)
	return vaults, nil
}

func (l *WatchlistFileLoader) info(msg string, args ...any) {
	if l.loggerInfo != nil {
		l.loggerInfo(msg, args...)
	}
}
