package service

import "github.com/emberforge/guildmaster/internal/model"

// ApplyDelta is the single entry point for currency movement. It checks the
// guild's balances against the requested deltas and returns the update map
// destined for the guild record. Balances never go negative: a debit that
// exceeds the balance fails with ErrInsufficientGold or ErrInsufficientGems
// and nothing is staged.
//
// The returned map only carries the currencies that actually move, so an
// update for a gold-only transaction does not touch the gems field.
func ApplyDelta(guild *model.Guild, goldDelta, gemsDelta int) (map[string]interface{}, error) {
	if goldDelta < 0 && guild.Gold+goldDelta < 0 {
		return nil, ErrInsufficientGold
	}
	if gemsDelta < 0 && guild.Gems+gemsDelta < 0 {
		return nil, ErrInsufficientGems
	}

	updates := make(map[string]interface{})
	if goldDelta != 0 {
		updates["gold"] = guild.Gold + goldDelta
	}
	if gemsDelta != 0 {
		updates["gems"] = guild.Gems + gemsDelta
	}
	return updates, nil
}
