package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"vietour/config"
	"vietour/infras/postgres"
	"vietour/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

// migrationURL points golang-migrate at the write database, keeping its bookkeeping in MigrationTable.
func migrationURL(config *config.Config) string {
	write := config.DB.Postgres.Write

	descriptor, _ := url.Parse(postgres.Descriptor(
		write.Username,
		write.Password,
		write.Host,
		write.Port,
		config.DB.Postgres.Prefix+write.Name,
		write.SSLMode,
		constant.Empty,
	))

	if table := config.DB.Postgres.MigrationTable; table != constant.Empty {
		query := descriptor.Query()
		query.Set("x-migrations-table", table)
		descriptor.RawQuery = query.Encode()
	}

	return descriptor.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, migrationURL(config))

	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// step applies one migration action and names it for the completion log.
type step struct {
	apply func(mig *migrate.Migrate) error
	done  string
}

var steps = map[string]step{
	"up": {
		apply: func(mig *migrate.Migrate) error { return mig.Up() },
		done:  "Database migrations completed successfully",
	},
	"step-up": {
		apply: func(mig *migrate.Migrate) error { return mig.Steps(1) },
		done:  "Applied one database migration",
	},
	"down": {
		apply: func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		done:  "Rolled back one database migration",
	},
	"drop": {
		apply: func(mig *migrate.Migrate) error { return mig.Down() },
		done:  "Database migrations rolled back successfully",
	},
}

func Runner(config *config.Config, action string) error {
	run, known := steps[action]
	if !known {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run.apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running %s migration: %w", action, err)
	}

	log.Info().Str("action", action).Msg(run.done)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}
