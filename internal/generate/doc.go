// Package generate implements `regions add`: it turns a region name plus
// answers (from flags, environment or prompts) into rendered template files.
package generate
