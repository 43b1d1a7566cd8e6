// Package mongo establishes the MongoDB connection used by the mongo vault
// storage backend (authenticator.MongoStorage). Configuration comes from
// MONGODB_* environment variables.
package mongo
