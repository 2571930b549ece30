package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/store/memory"
)

func TestApplyDefaults(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	require.NoError(t, Apply(ctx, st, Defaults()))

	companies, err := st.Companies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Alpha Commerce", companies[0].Name)

	categories, err := st.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 7)

	rules, err := st.KeywordRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 12)

	// Rules come out grouped by category in seed order.
	assert.Equal(t, "STRIPE", rules[0].Text)
	assert.Equal(t, "cat_101", rules[0].CategoryID)
	assert.Equal(t, "Alpha Commerce", rules[0].CompanyName)
}

func TestApplyIsRepeatable(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	require.NoError(t, Apply(ctx, st, Defaults()))
	require.NoError(t, Apply(ctx, st, Defaults()))

	rules, err := st.KeywordRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 12)
}
