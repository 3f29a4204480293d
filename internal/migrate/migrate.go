package migrate

import (
	"diary-service/internal/auth"
	"diary-service/internal/post"
	"diary-service/internal/shared/db"
)

func AutoMigrateAll(store *db.Store) error {
	return store.Base.AutoMigrate(
		&auth.User{},
		&post.Post{},
	)
}
