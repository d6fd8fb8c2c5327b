package settings

import (
	"fmt"

	"github.com/joho/godotenv"
)

// readDotenv loads the given .env files into one mapping. Later files win
// for repeated keys, mirroring the merge order of the file tier.
func readDotenv(paths []string) (map[string]string, error) {
	values := make(map[string]string)
	for _, path := range paths {
		loaded, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("settings: read dotenv %s: %w", path, err)
		}
		for key, value := range loaded {
			values[key] = value
		}
	}
	return values, nil
}
