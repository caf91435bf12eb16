package view

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine("ru")
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestPercentIsLocalised(t *testing.T) {
	ru, err := NewEngine("ru")
	require.NoError(t, err)
	assert.Equal(t, "37,5%", ru.Percent(37.5))

	en, err := NewEngine("en")
	require.NoError(t, err)
	assert.Equal(t, "37.5%", en.Percent(37.5))
	assert.Equal(t, "+81,7%", ru.SignedPercent(81.666))
}

func TestUnknownLocaleFallsBack(t *testing.T) {
	engine, err := NewEngine("not a locale!")
	require.NoError(t, err)
	assert.Equal(t, "37,5%", engine.Percent(37.5))
}

func TestRenderNilEngine(t *testing.T) {
	var engine *Engine
	err := engine.Render(httptest.NewRecorder(), "pages/scorecard.html", TemplateData{})
	assert.Error(t, err)
}
