package model

import (
	"strings"
	"testing"
)

// ============================================================================
// UpdateGuildRequest Tests
// ============================================================================

func TestUpdateGuildRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	name := "Iron Vanguard"
	desc := "We conquer at dawn"
	req := &UpdateGuildRequest{Name: &name, Description: &desc}

	errors := req.Validate()
	if len(errors) > 0 {
		t.Errorf("expected no errors, got %v", errors)
	}
}

func TestUpdateGuildRequest_Validate_EmptyName(t *testing.T) {
	t.Parallel()

	name := ""
	req := &UpdateGuildRequest{Name: &name}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "name" {
		t.Errorf("expected name error, got %v", errors)
	}
}

func TestUpdateGuildRequest_Validate_NameTooLong(t *testing.T) {
	t.Parallel()

	name := strings.Repeat("a", MaxGuildNameLength+1)
	req := &UpdateGuildRequest{Name: &name}

	errors := req.Validate()
	hasError := false
	for _, e := range errors {
		if e.Field == "name" {
			hasError = true
		}
	}
	if !hasError {
		t.Errorf("expected name length error, got %v", errors)
	}
}

func TestUpdateGuildRequest_Validate_DescriptionTooLong(t *testing.T) {
	t.Parallel()

	desc := strings.Repeat("a", MaxGuildDescLength+1)
	req := &UpdateGuildRequest{Description: &desc}

	errors := req.Validate()
	if len(errors) != 1 || errors[0].Field != "description" {
		t.Errorf("expected description error, got %v", errors)
	}
}

func TestUpdateGuildRequest_Validate_NilFieldsAllowed(t *testing.T) {
	t.Parallel()

	req := &UpdateGuildRequest{}
	if errors := req.Validate(); len(errors) > 0 {
		t.Errorf("expected no errors for empty patch, got %v", errors)
	}
}

// ============================================================================
// CharacterClass / CharacterRarity Tests
// ============================================================================

func TestCharacterClass_IsValid(t *testing.T) {
	t.Parallel()

	for _, class := range CharacterClasses {
		if !class.IsValid() {
			t.Errorf("expected class %q to be valid", class)
		}
	}
	if CharacterClass("necromancer").IsValid() {
		t.Error("expected unknown class to be invalid")
	}
}

func TestCharacterRarity_Multiplier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rarity CharacterRarity
		want   float64
	}{
		{RarityCommon, 1.0},
		{RarityRare, 1.2},
		{RarityEpic, 1.5},
		{RarityLegendary, 2.0},
	}
	for _, tc := range cases {
		if got := tc.rarity.Multiplier(); got != tc.want {
			t.Errorf("%s: expected multiplier %v, got %v", tc.rarity, tc.want, got)
		}
	}
}

func TestCharacterRarity_IsValid(t *testing.T) {
	t.Parallel()

	if !RarityLegendary.IsValid() {
		t.Error("expected legendary to be valid")
	}
	if CharacterRarity("mythic").IsValid() {
		t.Error("expected unknown rarity to be invalid")
	}
}

func TestCharacter_Power_SumsCombatStats(t *testing.T) {
	t.Parallel()

	c := &Character{Health: 100, Attack: 20, Defense: 15, Speed: 10}
	if got := c.Power(); got != 145 {
		t.Errorf("expected power 145, got %d", got)
	}
}

// ============================================================================
// Seed Territory Tests
// ============================================================================

func TestSeedTerritories_OrderedByDifficulty(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(SeedTerritories); i++ {
		if SeedTerritories[i].Difficulty <= SeedTerritories[i-1].Difficulty {
			t.Fatalf("seed territories out of order at index %d", i)
		}
	}
	if len(SeedTerritories) != 5 {
		t.Errorf("expected 5 seed territories, got %d", len(SeedTerritories))
	}
}
