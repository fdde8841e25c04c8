package session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lifeplan/income-engine/internal/domain"
)

// Person names the two profile slots a planning session tracks.
const (
	PersonSelf    = "self"
	PersonPartner = "partner"
)

// profileKey builds the stable per-field key for a person's profile field.
func profileKey(person, field string) string {
	return "profile." + person + "." + field
}

// SessionContext pairs the store with the session lifecycle. It is the
// injected owner of profile state; nothing here is a process-wide
// singleton.
type SessionContext struct {
	store           *FileStore
	onSessionChange []func()
}

// NewSessionContext wraps a store.
func NewSessionContext(store *FileStore) *SessionContext {
	return &SessionContext{store: store}
}

// OnSessionChange registers a hook invoked after stored profiles are
// cleared, either by a new session id or a manual reset.
func (sc *SessionContext) OnSessionChange(fn func()) {
	sc.onSessionChange = append(sc.onSessionChange, fn)
}

// Begin compares the incoming session identifier with the last-seen one.
// On mismatch all per-person profiles are cleared and the identifier is
// recorded; on match stored profiles survive.
func (sc *SessionContext) Begin(sessionID string) error {
	var lastSeen string
	found, err := sc.store.Get(sessionIDKey, &lastSeen)
	if err != nil {
		return err
	}
	if found && lastSeen == sessionID {
		return nil
	}
	if err := sc.clearProfiles(); err != nil {
		return err
	}
	return sc.store.Set(sessionIDKey, sessionID)
}

// Reset clears all stored profiles unconditionally.
func (sc *SessionContext) Reset() error {
	return sc.clearProfiles()
}

func (sc *SessionContext) clearProfiles() error {
	if err := sc.store.DeletePrefix("profile."); err != nil {
		return fmt.Errorf("failed to clear profiles: %w", err)
	}
	for _, fn := range sc.onSessionChange {
		fn()
	}
	return nil
}

// SaveProfile stores a person's profile under per-field keys.
func (sc *SessionContext) SaveProfile(person string, p *domain.PersonIncomeProfile) error {
	fields := map[string]any{
		"current_age":               p.CurrentAge,
		"current_income":            p.CurrentIncome,
		"retirement_age":            p.RetirementAge,
		"change_mode":               p.ChangeMode,
		"fluctuation_periods":       p.FluctuationPeriods,
		"current_status":            p.CurrentStatus,
		"retirement_income_monthly": p.RetirementIncomeMonthly,
	}
	for field, value := range fields {
		if err := sc.store.Set(profileKey(person, field), value); err != nil {
			return err
		}
	}
	// The pension sentinel distinguishes "unset" from an explicit zero;
	// unset is represented by the key's absence.
	pensionKey := profileKey(person, "expected_pension_monthly")
	if p.ExpectedPensionMonthly != nil {
		return sc.store.Set(pensionKey, *p.ExpectedPensionMonthly)
	}
	return sc.store.Delete(pensionKey)
}

// LoadProfile restores a person's profile. Fields absent from storage
// fall back to the documented session defaults.
func (sc *SessionContext) LoadProfile(person string) (*domain.PersonIncomeProfile, error) {
	p := domain.NewPersonIncomeProfile()

	if _, err := sc.store.Get(profileKey(person, "current_age"), &p.CurrentAge); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "current_income"), &p.CurrentIncome); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "retirement_age"), &p.RetirementAge); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "change_mode"), &p.ChangeMode); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "fluctuation_periods"), &p.FluctuationPeriods); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "current_status"), &p.CurrentStatus); err != nil {
		return nil, err
	}
	if _, err := sc.store.Get(profileKey(person, "retirement_income_monthly"), &p.RetirementIncomeMonthly); err != nil {
		return nil, err
	}

	var pension decimal.Decimal
	found, err := sc.store.Get(profileKey(person, "expected_pension_monthly"), &pension)
	if err != nil {
		return nil, err
	}
	if found {
		p.ExpectedPensionMonthly = &pension
	}
	return p, nil
}
