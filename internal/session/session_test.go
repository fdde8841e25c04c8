package session

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeplan/income-engine/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "profiles.json"))
	require.NoError(t, err)
	return store
}

func sampleProfile() *domain.PersonIncomeProfile {
	pension := decimal.NewFromInt(6000)
	return &domain.PersonIncomeProfile{
		CurrentAge:    35,
		CurrentIncome: decimal.NewFromFloat(24.5),
		RetirementAge: 58,
		ChangeMode:    domain.ChangeModeFluctuating,
		FluctuationPeriods: []domain.FluctuationPeriod{
			{StartAge: 40, EndAge: 45, GrowthRatePercent: decimal.NewFromInt(15)},
		},
		ExpectedPensionMonthly: &pension,
		CurrentStatus:          domain.StatusNotRetired,
	}
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := NewSessionContext(newTestStore(t))
	original := sampleProfile()

	require.NoError(t, ctx.SaveProfile(PersonSelf, original))
	restored, err := ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)

	assert.Equal(t, original.CurrentAge, restored.CurrentAge)
	assert.True(t, original.CurrentIncome.Equal(restored.CurrentIncome))
	assert.Equal(t, original.RetirementAge, restored.RetirementAge)
	assert.Equal(t, original.ChangeMode, restored.ChangeMode)
	require.Len(t, restored.FluctuationPeriods, 1)
	assert.Equal(t, original.FluctuationPeriods[0].StartAge, restored.FluctuationPeriods[0].StartAge)
	assert.True(t, original.FluctuationPeriods[0].GrowthRatePercent.Equal(restored.FluctuationPeriods[0].GrowthRatePercent))
	require.NotNil(t, restored.ExpectedPensionMonthly)
	assert.True(t, original.ExpectedPensionMonthly.Equal(*restored.ExpectedPensionMonthly))
	assert.Equal(t, original.CurrentStatus, restored.CurrentStatus)
}

func TestLoadProfileDefaultsWhenAbsent(t *testing.T) {
	ctx := NewSessionContext(newTestStore(t))

	restored, err := ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)

	defaults := domain.NewPersonIncomeProfile()
	assert.Equal(t, defaults.CurrentAge, restored.CurrentAge)
	assert.Equal(t, defaults.RetirementAge, restored.RetirementAge)
	assert.Equal(t, defaults.ChangeMode, restored.ChangeMode)
	assert.Nil(t, restored.ExpectedPensionMonthly)
}

func TestPensionSentinelSurvivesRoundTrip(t *testing.T) {
	// nil (unset) and explicit zero are different pension states and must
	// not collapse into each other through storage.
	ctx := NewSessionContext(newTestStore(t))

	unset := sampleProfile()
	unset.ExpectedPensionMonthly = nil
	require.NoError(t, ctx.SaveProfile(PersonSelf, unset))
	restored, err := ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)
	assert.Nil(t, restored.ExpectedPensionMonthly)

	zero := decimal.Zero
	explicit := sampleProfile()
	explicit.ExpectedPensionMonthly = &zero
	require.NoError(t, ctx.SaveProfile(PersonSelf, explicit))
	restored, err = ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)
	require.NotNil(t, restored.ExpectedPensionMonthly)
	assert.True(t, restored.ExpectedPensionMonthly.IsZero())
}

func TestBeginNewSessionClearsProfiles(t *testing.T) {
	ctx := NewSessionContext(newTestStore(t))
	changed := 0
	ctx.OnSessionChange(func() { changed++ })

	require.NoError(t, ctx.Begin("session-1"))
	require.NoError(t, ctx.SaveProfile(PersonSelf, sampleProfile()))
	require.NoError(t, ctx.SaveProfile(PersonPartner, sampleProfile()))

	// Same identifier: stored profiles survive.
	require.NoError(t, ctx.Begin("session-1"))
	restored, err := ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)
	assert.Equal(t, 35, restored.CurrentAge)

	// New identifier: everything resets to defaults.
	require.NoError(t, ctx.Begin("session-2"))
	restored, err = ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)
	assert.Equal(t, domain.NewPersonIncomeProfile().CurrentAge, restored.CurrentAge)

	partner, err := ctx.LoadProfile(PersonPartner)
	require.NoError(t, err)
	assert.Equal(t, domain.NewPersonIncomeProfile().CurrentAge, partner.CurrentAge)

	// Begin fired the hook twice: the initial id and the mismatch.
	assert.Equal(t, 2, changed)
}

func TestResetClearsUnconditionally(t *testing.T) {
	ctx := NewSessionContext(newTestStore(t))
	changed := false
	ctx.OnSessionChange(func() { changed = true })

	require.NoError(t, ctx.SaveProfile(PersonSelf, sampleProfile()))
	require.NoError(t, ctx.Reset())

	restored, err := ctx.LoadProfile(PersonSelf)
	require.NoError(t, err)
	assert.Equal(t, domain.NewPersonIncomeProfile().CurrentAge, restored.CurrentAge)
	assert.True(t, changed)
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, NewSessionContext(store).SaveProfile(PersonSelf, sampleProfile()))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	restored, err := NewSessionContext(reopened).LoadProfile(PersonSelf)
	require.NoError(t, err)
	assert.Equal(t, 35, restored.CurrentAge)
}

func TestStoreWritesSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("profile.self.current_age", 40))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var values map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &values))
	assert.JSONEq(t, "1", string(values["schema_version"]))
}
