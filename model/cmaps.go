/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"fmt"
	"sync"

	"github.com/pixelpdf/pixelpdf/common"
	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

// PredefinedCMapProvider supplies the raw data of a predefined CJK CMap by
// name, e.g. from a resource bundle shipped with the application. The
// Identity-H and Identity-V CMaps are built in and never consult the
// provider.
type PredefinedCMapProvider func(name string) ([]byte, error)

var (
	cmapProviderMu sync.RWMutex
	cmapProvider   PredefinedCMapProvider
)

// RegisterPredefinedCMapProvider installs the provider used to resolve
// predefined CMap names, including usecmap parents.
func RegisterPredefinedCMapProvider(provider PredefinedCMapProvider) {
	cmapProviderMu.Lock()
	cmapProvider = provider
	cmapProviderMu.Unlock()
}

// loadPredefinedCMap resolves a predefined CMap by name.
func loadPredefinedCMap(name string) (*cmap.CMap, error) {
	return loadPredefinedCMapDepth(name, 0)
}

// loadPredefinedCMapDepth resolves a predefined CMap at the given usecmap
// chain depth, so that the chain bound holds across load boundaries.
func loadPredefinedCMapDepth(name string, depth int) (*cmap.CMap, error) {
	if cmap.IsIdentityName(name) {
		return cmap.NewIdentityCMap(name), nil
	}
	cmapProviderMu.RLock()
	provider := cmapProvider
	cmapProviderMu.RUnlock()
	if provider == nil {
		common.Log.Debug("ERROR: no predefined CMap provider for %q", name)
		return nil, fmt.Errorf("predefined CMap %q not available", name)
	}
	data, err := provider(name)
	if err != nil {
		return nil, err
	}
	return cmap.LoadCmapFromDataDepth(data, loadParentCMap, depth)
}

// loadParentCMap resolves usecmap references of predefined CMaps.
func loadParentCMap(name string, depth int) (*cmap.CMap, error) {
	return loadPredefinedCMapDepth(name, depth)
}

// loadToUnicodeCMap parses an embedded ToUnicode CMap stream.
func loadToUnicodeCMap(data []byte) (*cmap.CMap, error) {
	return cmap.LoadCmapFromData(data, loadParentCMap)
}
