package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tenrai/leitor/pkg/data"
)

type fakeProfileStore struct {
	profile *data.Profile
	saved   []data.Profile
	err     error
}

func (f *fakeProfileStore) Profile(ctx context.Context, userID string) (*data.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileStore) UpsertProfile(ctx context.Context, p data.Profile) error {
	f.saved = append(f.saved, p)
	return f.err
}

type fakeUploader struct {
	bucket      string
	objectPath  string
	contentType string
	upsert      bool
	err         error
}

func (f *fakeUploader) Upload(ctx context.Context, bucket, objectPath string, body []byte, contentType string, upsert bool) error {
	f.bucket = bucket
	f.objectPath = objectPath
	f.contentType = contentType
	f.upsert = upsert
	return f.err
}

func (f *fakeUploader) PublicURL(bucket, objectPath string) string {
	return "https://cdn.test/" + bucket + "/" + objectPath
}

func TestSetAvatarRequiresSession(t *testing.T) {
	profiles := NewProfiles(&fakeSessions{}, &fakeProfileStore{}, &fakeUploader{})

	_, err := profiles.SetAvatar(context.Background(), []byte("img"), "image/png")
	if !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Expected ErrNotSignedIn, got %v", err)
	}
}

func TestSetAvatarUploadsAndUpserts(t *testing.T) {
	store := &fakeProfileStore{}
	uploader := &fakeUploader{}
	profiles := NewProfiles(signedIn(), store, uploader)

	url, err := profiles.SetAvatar(context.Background(), []byte("img"), "image/png")
	if err != nil {
		t.Fatalf("SetAvatar: %v", err)
	}

	if uploader.bucket != "avatars" || uploader.objectPath != "u1/avatar.png" {
		t.Errorf("Unexpected upload target %s/%s", uploader.bucket, uploader.objectPath)
	}
	if !uploader.upsert {
		t.Error("Expected overwrite upload")
	}
	if len(store.saved) != 1 {
		t.Fatalf("Expected one upsert, got %d", len(store.saved))
	}
	if store.saved[0].AvatarURL != url {
		t.Errorf("Profile row points at %q, upload returned %q", store.saved[0].AvatarURL, url)
	}
}

func TestSetBannerKeepsAvatar(t *testing.T) {
	store := &fakeProfileStore{profile: &data.Profile{UserID: "u1", AvatarURL: "https://cdn.test/avatars/u1/avatar.png"}}
	uploader := &fakeUploader{}
	profiles := NewProfiles(signedIn(), store, uploader)

	url, err := profiles.SetBanner(context.Background(), []byte("img"), "image/jpeg")
	if err != nil {
		t.Fatalf("SetBanner: %v", err)
	}

	if uploader.objectPath != "u1/banner.jpg" {
		t.Errorf("Unexpected object path %q", uploader.objectPath)
	}
	row := store.saved[0]
	if row.BannerURL != url {
		t.Errorf("Banner not updated, got %q", row.BannerURL)
	}
	if row.AvatarURL != "https://cdn.test/avatars/u1/avatar.png" {
		t.Errorf("Avatar lost on banner update, got %q", row.AvatarURL)
	}
}

func TestGetSignedOutIsNil(t *testing.T) {
	profiles := NewProfiles(&fakeSessions{}, &fakeProfileStore{profile: &data.Profile{UserID: "u1"}}, &fakeUploader{})

	p, err := profiles.Get(context.Background())
	if err != nil || p != nil {
		t.Fatalf("Expected nil profile without session, got %v, %v", p, err)
	}
}
