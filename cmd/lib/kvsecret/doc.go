// Package kvsecret implements the logic for kvsecret binary,
// which prints a secret fetched from Azure Key Vault.
//
// The config file has two optional sections:
//
//	log:
//	  file: logger.yml
//	  logger: standard
//	secrets:
//	  vaultURL: https://myvault.vault.azure.net
//	  managedIdentity: true
//
// To use this library, create a package with main function as:
//
//	func main() {
//	  os.Exit(kvsecret.Run())
//	}
package kvsecret
