// Package domain holds the core types shared by the recorder and stats
// services: users, timer entries, and the repository contracts backed by
// PostgreSQL.
package domain
