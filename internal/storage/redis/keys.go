package redis

import (
	"fmt"

	"github.com/mcoot/gamestore/internal/model"
)

// Key prefix for all catalog data
const keyPrefix = "gamestore:catalog"

// gameListKey returns the Redis key for the full ordered game list
func gameListKey() string {
	return keyPrefix + ":games"
}

// gameDetailKey returns the Redis key for a joined game detail
func gameDetailKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// publisherGamesKey returns the Redis key for a publisher's games
func publisherGamesKey(id model.PublisherID) string {
	return fmt.Sprintf("%s:publisher:%d", keyPrefix, id)
}

// developerGamesKey returns the Redis key for a developer's games
func developerGamesKey(id model.DeveloperID) string {
	return fmt.Sprintf("%s:developer:%d", keyPrefix, id)
}

// catalogPattern matches every key written by the cache
func catalogPattern() string {
	return keyPrefix + ":*"
}
