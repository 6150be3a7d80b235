// Package mongo wires the platform to its document store: a retrying
// connection helper over go.mongodb.org/mongo-driver/v2, env-tagged
// configuration, and a ping-based health probe.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.NewWithDatabase(ctx, cfg, "notebank")
package mongo
