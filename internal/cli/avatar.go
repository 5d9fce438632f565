package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// Avatar uploads a photo from disk to object storage and records its URL on
// the profile. The photo itself never lands in the local store, so quota
// recovery cannot lose it.
func (a *App) Avatar(ctx context.Context) error {
	if a.avatars == nil {
		_, _ = printlnFn("No object storage configured.")
		return nil
	}

	path, err := GetSimpleText(a.reader, "Path to photo", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("avatars/%s.jpg", a.profile.TelegramID)
	if a.profile.TelegramID == "" {
		key = "avatars/local.jpg"
	}

	url, err := a.avatars.Put(ctx, key, data, http.DetectContentType(data))
	if err != nil {
		return err
	}

	a.profile.AvatarURL = url
	a.syncer.Save(ctx, a.profile)
	_, _ = printlnFn("Avatar uploaded:", url)
	return nil
}
