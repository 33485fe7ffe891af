package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageTab(t *testing.T) {
	pkg := Package{
		Identifier: "gymnastics",
		Tabs: []Tab{
			{Identifier: "Floor", Content: "floor"},
			{Identifier: "Tramp", Content: "tramp"},
		},
	}

	tab, ok := pkg.Tab("Tramp")
	assert.True(t, ok)
	assert.Equal(t, "tramp", tab.Content)

	_, ok = pkg.Tab("tramp")
	assert.False(t, ok, "tab identifiers are case-sensitive file stems")
}

func TestAllModels(t *testing.T) {
	models := AllModels()
	assert.Len(t, models, 2)
	assert.IsType(t, &User{}, models[0])
	assert.IsType(t, &SkillValue{}, models[1])
}
