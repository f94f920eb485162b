// Package marketplace implements the core download routine against the
// Visual Studio Marketplace gallery endpoint: URL construction, the HTTP
// fetch with redirect following, response validation, filename derivation,
// and the atomic replace of the saved .vsix file.
package marketplace
