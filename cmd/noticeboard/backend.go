package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/afero"

	"github.com/joestump/noticeboard/internal/config"
	"github.com/joestump/noticeboard/internal/db"
	"github.com/joestump/noticeboard/internal/store"
	"github.com/joestump/noticeboard/internal/store/filestore"
	"github.com/joestump/noticeboard/internal/store/mongostore"
)

// backend bundles the stores for the configured storage backend.
type backend struct {
	Announcements store.AnnouncementStore
	Admins        store.AdminStore
	close         func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// openBackend connects to the configured storage and prepares it: SQL
// databases are migrated and Mongo indexes are created.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQL:
		database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(database, cfg.DB.Driver); err != nil {
			_ = database.Close()
			return nil, err
		}
		log.Printf("storage: %s database ready", cfg.DB.Driver)
		return &backend{
			Announcements: store.NewSQLAnnouncementStore(database),
			Admins:        store.NewSQLAdminStore(database),
			close:         database.Close,
		}, nil

	case config.BackendFile:
		fileStore := filestore.New(afero.NewOsFs(), cfg.File.Path)
		log.Printf("storage: file %s", cfg.File.Path)
		return &backend{Announcements: fileStore, Admins: fileStore}, nil

	case config.BackendMongo:
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		mdb := client.Database(cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Printf("storage: mongo database %s", cfg.Mongo.Database)
		return &backend{
			Announcements: mongostore.NewAnnouncementStore(mdb.Collection(mongostore.AnnouncementsCollection)),
			Admins:        mongostore.NewAdminStore(mdb.Collection(mongostore.AdminsCollection)),
			close:         func() error { return client.Disconnect(context.Background()) },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
