package bootstrap

import "hotel/config"

func (b *Bootstrap) SetMigrator(fn func(*config.Config) error) {
	b.migrate = fn
}
