// Package check validates the local environment of the daily
// story video generator: its appsettings.json keys, the reachability
// of the OpenAI API, the working directories and the external
// tools it shells out to.
package check
