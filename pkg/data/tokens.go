package data

const (
	accessTokenPref  = "auth.access_token"
	refreshTokenPref = "auth.refresh_token"
)

// LoadTokens returns the persisted auth tokens. ok is false when no
// refresh token has been stored.
func (s *Store) LoadTokens() (access, refresh string, ok bool) {
	refresh, ok, err := s.GetPref(refreshTokenPref)
	if err != nil || !ok {
		return "", "", false
	}
	access, _, _ = s.GetPref(accessTokenPref)
	return access, refresh, true
}

func (s *Store) SaveTokens(access, refresh string) error {
	if err := s.SetPref(accessTokenPref, access); err != nil {
		return err
	}
	return s.SetPref(refreshTokenPref, refresh)
}

func (s *Store) ClearTokens() error {
	if err := s.DeletePref(accessTokenPref); err != nil {
		return err
	}
	return s.DeletePref(refreshTokenPref)
}
