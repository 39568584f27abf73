// Package scaffold writes a commented starter configuration for a new
// report project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"deckmerge/internal/ux"
)

var configTemplate = `# deckmerge configuration.
# Every setting shown here has a built-in default; delete what you do not
# need to change.

template: template.pptx
output-dir: outputs
upload-dir: uploads
prefix: CDP_USECASE_AUTOREPORT

# Slide numbers are 1-based, as PowerPoint shows them.
overview-slide: 1
heatmap-columns: 8

# Records are filtered by their use-case type before they reach a slide.
adoption-tag: CDP Business Adoption
foundational-tag: CDP Foundational Use Case

# Override CSV column headers per field when the export changes.
# columns:
#   title: cr4e2_usecasetitle
#   owner: cr4e2_owner

# One profile per line of business. Key formats carry exactly one %d,
# which binds the placeholder to the record's 1-based position.
regions:
  - name: Marketing
    filter: Marketing            # business-unit substring
    slides: [2, 3]
    title-format: "Marketing USE CASE Title %d"
    overview-title-format: "Marketing USE CASE Title %d"
    status-format: "StatusupdateUC%dMarketing"
    owner-key: UseCaseOwnerMarketing
    delivered-format: "MD%d"
    adopted-format: "MA%d"
    completeness-format: "OCM%d"

foundational:
  slides: [9, 10]
  title-format: "Foundational Use Case Title %d"
  owner-format: "Foundational Use Case Owner %d"
  status-format: "Overall Status FUC %d"
  traffic-format: "pr%d"
  message-keys: [AIOverviewMessage1, AIOverviewMessage2]

one-pager:
  start-slide: 11
  # consume: fill pre-duplicated template slides, delete leftovers.
  # clone:   duplicate a single template slide per record.
  mode: consume
  keys:
    title: UseCaseOnePagerTitel1
    problem: UseCaseOnePagerPB1
    scope: UseCaseOnePagerScope1
    value: UseCaseOnePagerV&KPI1
    line-of-business: UseCaseOnePagerBU1
    business-unit: UseCaseOnePagerBSU1
    owner: UseCaseOnePagerOwner1
    contacts: UseCaseOnePagerScopeBC
    key-users: UseCaseOnePagerScopeAFK
`

// Init writes a starter deckmerge.yaml into targetDir.
func Init(targetDir string) error {
	configPath := filepath.Join(targetDir, "deckmerge.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("deckmerge.yaml already exists in %s", targetDir)
	}

	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing deckmerge.yaml: %w", err)
	}

	fmt.Printf("\n%s%s✓ Created deckmerge.yaml%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Drop your PowerPoint template next to it as %stemplate.pptx%s\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Adjust the region profiles to your template's placeholders\n")
	fmt.Printf("    3. Run %sdeckmerge inspect template.pptx%s to list what the template exposes\n", ux.Cyan, ux.Reset)
	fmt.Printf("    4. Run %sdeckmerge generate export.csv%s\n\n", ux.Cyan, ux.Reset)

	return nil
}
