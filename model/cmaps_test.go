/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpdf/pixelpdf/internal/cmap"
)

func TestLoadPredefinedIdentity(t *testing.T) {
	cm, err := loadPredefinedCMap("Identity-H")
	require.NoError(t, err)
	assert.Equal(t, 0, cm.WMode())

	cm, err = loadPredefinedCMap("Identity-V")
	require.NoError(t, err)
	assert.Equal(t, 1, cm.WMode())
}

func TestLoadPredefinedWithoutProvider(t *testing.T) {
	RegisterPredefinedCMapProvider(nil)
	_, err := loadPredefinedCMap("90ms-RKSJ-H")
	assert.Error(t, err)
}

// A provider serving mutually referencing CMaps must not recurse without
// bound: the usecmap chain limit rejects the cycle.
func TestLoadPredefinedUseCMapCycle(t *testing.T) {
	RegisterPredefinedCMapProvider(func(name string) ([]byte, error) {
		switch name {
		case "Cycle-A":
			return []byte("/Cycle-B usecmap\n1 begincodespacerange\n<0000> <ffff>\nendcodespacerange\n"), nil
		case "Cycle-B":
			return []byte("/Cycle-A usecmap\n1 begincodespacerange\n<0000> <ffff>\nendcodespacerange\n"), nil
		}
		return nil, fmt.Errorf("unknown CMap %q", name)
	})
	defer RegisterPredefinedCMapProvider(nil)

	_, err := loadPredefinedCMap("Cycle-A")
	assert.ErrorIs(t, err, cmap.ErrCMapDepth)
}

// One usecmap hop through the provider inherits the parent's mappings.
func TestLoadPredefinedUseCMapParent(t *testing.T) {
	RegisterPredefinedCMapProvider(func(name string) ([]byte, error) {
		switch name {
		case "Child-H":
			return []byte("/Parent-H usecmap\n1 begincodespacerange\n<0000> <ffff>\nendcodespacerange\n"), nil
		case "Parent-H":
			return []byte("1 begincodespacerange\n<0000> <ffff>\nendcodespacerange\n1 begincidchar\n<0001> 42\nendcidchar\n"), nil
		}
		return nil, fmt.Errorf("unknown CMap %q", name)
	})
	defer RegisterPredefinedCMapProvider(nil)

	cm, err := loadPredefinedCMap("Child-H")
	require.NoError(t, err)
	cid, ok := cm.CIDForCode(cmap.CharacterCode{Val: 1, NumBytes: 2})
	require.True(t, ok)
	assert.Equal(t, cmap.CID(42), cid)
}
