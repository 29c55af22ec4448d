// Package memory implements the account, reset token and session stores in
// process memory. Each store serializes access with a single mutex, which
// makes uniqueness checks and token consumption atomic. Data does not survive
// a restart; use it for development and tests.
package memory
