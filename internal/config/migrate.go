package config

import "fmt"

// migrate upgrades settings from their current version to
// CurrentVersion. Each migration function transforms the settings one
// version forward. Returns an error if the version is newer than what
// this binary supports.
func migrate(s *Settings) error {
	if s.Version == CurrentVersion {
		return nil
	}
	if s.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: settings version %d is newer than supported version %d (upgrade specify)",
			ErrInvalid, s.Version, CurrentVersion,
		)
	}
	if s.Version < 1 {
		return fmt.Errorf("%w: settings version %d is invalid", ErrInvalid, s.Version)
	}

	// Apply migrations sequentially: v1→v2, etc.
	for s.Version < CurrentVersion {
		fn, ok := migrations[s.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, s.Version)
		}
		if err := fn(s); err != nil {
			return fmt.Errorf("migrating settings from v%d: %w", s.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the
// next version. The function must increment s.Version on success.
var migrations = map[int]func(*Settings) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 folds the old top-level default_model key into the
// defaults section. v1 files predate script defaults and tokens.
func migrateV1ToV2(s *Settings) error { //nolint:unparam // signature must match migrations map type
	if s.Defaults.Model == "" && s.LegacyModel != "" {
		s.Defaults.Model = s.LegacyModel
	}
	s.LegacyModel = ""
	s.Version = 2
	return nil
}
