// Package settings populates configuration structs from an ordered chain of
// value sources: explicit constructor values first, then environment
// variables, then .env files, then secret providers such as AWS Secrets
// Manager, HashiCorp Vault, or Google Secret Manager, and finally the merged
// YAML/JSON file content served by the yamlsettings package. Fields are
// annotated with `settings` struct tags that describe which keys to read, and
// the loader reports grouped errors so callers can decide how to handle
// missing values.
//
// Example:
//
//	type Config struct {
//	    Host        string `settings:"name:host env:APP_HOST"`
//	    DatabaseURL string `settings:"env:DATABASE_URL secret:prod/database-url"`
//	}
//
//	files, _ := yamlsettings.New(yamlsettings.WithFiles(yamlsettings.SinglePath("app.yaml")))
//	loader, err := settings.New(
//	    settings.WithFileSource(files),
//	    settings.WithProvider("aws", awsProvider),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := loader.Load(ctx, &cfg); err != nil {
//	    var group *settings.ErrorGroup
//	    if errors.As(err, &group) {
//	        log.Println(group)
//	    } else {
//	        log.Fatal(err)
//	    }
//	}
//
// Fields without an env or secret key are filled from the explicit values and
// file tiers by their name (the lowercased field name unless `name:` says
// otherwise) and are left at their zero value when no source carries them.
// Fields that do declare an env or secret key are treated as required and
// contribute to the returned error group when every source fails.
package settings
