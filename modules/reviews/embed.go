package reviews

import "embed"

// Migrations holds the goose migrations of the review tables under
// "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Locales holds the review page translations under "locales".
//
//go:embed locales/*.yaml
var Locales embed.FS
