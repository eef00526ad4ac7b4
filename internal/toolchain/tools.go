// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Solana toolchain tool definitions

package toolchain

// Tool represents a required toolchain component
type Tool struct {
	Name         string // Tool name
	Command      string // Command to check existence
	VersionCmd   string // Command to get version
	Required     bool   // Whether a build can proceed without it
	InstallGuide string // Installation instructions
}

// DefaultTools returns the Solana development tools the pipeline relies on
func DefaultTools() map[string]*Tool {
	return map[string]*Tool{
		"rustc": {
			Name:       "rustc",
			Command:    "rustc",
			VersionCmd: "rustc --version",
			Required:   true,
			InstallGuide: `Install Rust:
  curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh
  Or see: https://www.rust-lang.org/tools/install`,
		},
		"cargo": {
			Name:       "cargo",
			Command:    "cargo",
			VersionCmd: "cargo --version",
			Required:   true,
			InstallGuide: `Cargo ships with the Rust toolchain:
  curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh`,
		},
		"solana": {
			Name:       "solana",
			Command:    "solana",
			VersionCmd: "solana --version",
			Required:   true,
			InstallGuide: `Install the Solana CLI:
  sh -c "$(curl -sSfL https://release.anza.xyz/stable/install)"
  Or see: https://docs.solanalabs.com/cli/install`,
		},
		"anchor": {
			Name:       "anchor",
			Command:    "anchor",
			VersionCmd: "anchor --version",
			Required:   false,
			InstallGuide: `Install Anchor via AVM:
  cargo install --git https://github.com/coral-xyz/anchor avm --locked
  avm install latest && avm use latest
  Without anchor the pipeline falls back to cargo build-sbf.`,
		},
	}
}
