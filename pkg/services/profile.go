package services

import (
	"context"
	"fmt"
	"time"

	"github.com/tenrai/leitor/pkg/data"
)

const (
	avatarBucket = "avatars"
	bannerBucket = "banners"
)

// ProfileStore is the remote persistence for profile rows.
type ProfileStore interface {
	Profile(ctx context.Context, userID string) (*data.Profile, error)
	UpsertProfile(ctx context.Context, p data.Profile) error
}

// Uploader sends files to bucket storage; satisfied by the backend
// client.
type Uploader interface {
	Upload(ctx context.Context, bucket, objectPath string, body []byte, contentType string, upsert bool) error
	PublicURL(bucket, objectPath string) string
}

// Profiles manages the user profile row and its avatar and banner
// images.
type Profiles struct {
	sessions SessionGetter
	store    ProfileStore
	uploader Uploader
}

func NewProfiles(sessions SessionGetter, store ProfileStore, uploader Uploader) *Profiles {
	return &Profiles{sessions: sessions, store: store, uploader: uploader}
}

// Get returns the signed-in user's profile, or nil when signed out or
// no row exists yet.
func (p *Profiles) Get(ctx context.Context) (*data.Profile, error) {
	user := p.sessions.User()
	if user == nil {
		return nil, nil
	}
	return p.store.Profile(ctx, user.ID)
}

// SetAvatar uploads the image and points the profile row at it.
// Re-uploading replaces the previous file at the same object path.
func (p *Profiles) SetAvatar(ctx context.Context, body []byte, contentType string) (string, error) {
	return p.setImage(ctx, avatarBucket, "avatar", body, contentType)
}

// SetBanner uploads the image and points the profile row at it.
func (p *Profiles) SetBanner(ctx context.Context, body []byte, contentType string) (string, error) {
	return p.setImage(ctx, bannerBucket, "banner", body, contentType)
}

func (p *Profiles) setImage(ctx context.Context, bucket, name string, body []byte, contentType string) (string, error) {
	user := p.sessions.User()
	if user == nil {
		return "", ErrNotSignedIn
	}
	ext := extensionFor(contentType)
	objectPath := fmt.Sprintf("%s/%s.%s", user.ID, name, ext)
	if err := p.uploader.Upload(ctx, bucket, objectPath, body, contentType, true); err != nil {
		return "", fmt.Errorf("enviar %s: %w", name, err)
	}
	url := p.uploader.PublicURL(bucket, objectPath)

	current, err := p.store.Profile(ctx, user.ID)
	if err != nil {
		return "", err
	}
	row := data.Profile{UserID: user.ID, UpdatedAt: time.Now().UTC()}
	if current != nil {
		row.AvatarURL = current.AvatarURL
		row.BannerURL = current.BannerURL
	}
	if bucket == avatarBucket {
		row.AvatarURL = url
	} else {
		row.BannerURL = url
	}
	if err := p.store.UpsertProfile(ctx, row); err != nil {
		return "", fmt.Errorf("salvar perfil: %w", err)
	}
	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
