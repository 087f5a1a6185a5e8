// Package cli provides command-line interface functionality for VPN
// Composer. This allows users to inspect profiles, query provider
// servers, ingest provider datasets, and manage credentials from the
// terminal.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/config"
	"github.com/yllada/vpn-composer/keyring"
	"github.com/yllada/vpn-composer/profile"
	"github.com/yllada/vpn-composer/provider"
	"github.com/yllada/vpn-composer/store"
)

// CLI represents the command-line interface.
type CLI struct {
	profiles *store.ProfileStore
	servers  *store.ServerRepository
	prefs    *store.PreferencesStore
	creds    *keyring.Store
	logger   common.Logger
}

// New creates a new CLI instance over the application data directory.
func New(cfg *config.Config) (*CLI, error) {
	logger := common.GetLogger()

	dataDir := cfg.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = common.GetDataDir()
		if err != nil {
			return nil, err
		}
	}

	db, err := store.OpenDB(filepath.Join(dataDir, common.ProfilesDBFileName))
	if err != nil {
		return nil, err
	}

	profiles, err := store.NewProfileStore(db, logger)
	if err != nil {
		return nil, err
	}
	servers, err := store.NewServerRepository(db, logger)
	if err != nil {
		return nil, err
	}
	prefs, err := store.NewPreferencesStore(filepath.Join(dataDir, common.PreferencesDirName), logger)
	if err != nil {
		return nil, err
	}
	creds, err := keyring.New()
	if err != nil {
		return nil, err
	}

	return &CLI{
		profiles: profiles,
		servers:  servers,
		prefs:    prefs,
		creds:    creds,
		logger:   logger,
	}, nil
}

// ListProfiles lists all stored profiles.
func (c *CLI) ListProfiles(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, common.QueryTimeout)
	defer cancel()

	infos, err := c.profiles.List(ctx)
	if err != nil {
		return err
	}

	if len(infos) == 0 {
		fmt.Println("No profiles stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSHARED\tUPDATED")
	fmt.Fprintln(w, "--\t----\t------\t-------")

	for _, info := range infos {
		shared := "No"
		if info.RemotelyShared {
			shared = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(info.ID), info.Name, shared,
			info.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

// ShowProfile prints the modules of a profile identified by name or id
// prefix.
func (c *CLI) ShowProfile(ctx context.Context, nameOrID string) error {
	ctx, cancel := context.WithTimeout(ctx, common.QueryTimeout)
	defer cancel()

	p, err := c.resolveProfile(ctx, nameOrID)
	if err != nil {
		return err
	}

	fmt.Printf("Profile: %s (%s)\n", p.Name(), p.ID())
	if p.Attributes().AvailableForTV {
		fmt.Println("Available for TV: yes")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODULE\tKIND\tACTIVE")
	fmt.Fprintln(w, "------\t----\t------")
	for _, m := range p.Modules() {
		active := "No"
		if p.IsActive(m.ID) {
			active = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(m.ID), m.DisplayName(), active)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	editor := profile.NewEditorWithProfile(p, c.logger)
	available := editor.AvailableKinds()
	if len(available) > 0 {
		names := make([]string, len(available))
		for i, k := range available {
			names[i] = k.DisplayName()
		}
		fmt.Printf("Addable modules: %s\n", strings.Join(names, ", "))
	}
	return nil
}

// DeleteProfile removes a profile identified by name or id prefix.
func (c *CLI) DeleteProfile(ctx context.Context, nameOrID string) error {
	ctx, cancel := context.WithTimeout(ctx, common.SaveTimeout)
	defer cancel()

	p, err := c.resolveProfile(ctx, nameOrID)
	if err != nil {
		return err
	}
	if err := c.profiles.Delete(ctx, p.ID()); err != nil {
		return err
	}
	fmt.Printf("Deleted profile %s (%s)\n", p.Name(), shortID(p.ID()))
	return nil
}

// ListServers queries the server dataset of a provider with optional
// facet filters and prints the matching servers.
func (c *CLI) ListServers(ctx context.Context, providerID, category, country, preset string) error {
	if providerID == "" {
		return errors.New("a provider id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, common.QueryTimeout)
	defer cancel()

	query := provider.ServerQuery{
		Filters: provider.Filters{
			CategoryName: category,
			CountryCode:  country,
			PresetID:     preset,
		},
	}
	servers, err := c.servers.FilteredServers(ctx, providerID, query)
	if err != nil {
		return err
	}

	if len(servers) == 0 {
		fmt.Println("No servers match the given filters.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTRY\tAREA\tCATEGORY\tHOSTNAME")
	fmt.Fprintln(w, "-------\t----\t--------\t--------")
	for _, s := range servers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.CountryCode, s.Area, s.CategoryName, s.Hostname)
	}
	return w.Flush()
}

// ShowFacets prints the reachable filter facets of a provider: the
// category list, and the countries and presets still reachable under the
// given selection.
func (c *CLI) ShowFacets(ctx context.Context, providerID, category, country, preset string) error {
	if providerID == "" {
		return errors.New("a provider id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, common.QueryTimeout)
	defer cancel()

	options, err := c.servers.AvailableOptions(ctx, providerID)
	if err != nil {
		return err
	}

	engine := provider.NewEngine(c.logger)
	filters := provider.Filters{
		CategoryName: category,
		CountryCode:  country,
		PresetID:     preset,
	}
	engine.Load(options, &filters)

	if !filters.IsEmpty() {
		servers, err := c.servers.FilteredServers(ctx, providerID, provider.ServerQuery{Filters: filters})
		if err != nil {
			return err
		}
		engine.Narrow(servers)
	}

	fmt.Printf("Categories: %s\n", strings.Join(engine.Categories(), ", "))

	countries := engine.Countries()
	names := make([]string, len(countries))
	for i, cc := range countries {
		names[i] = fmt.Sprintf("%s (%s)", cc.Description, cc.Code)
	}
	fmt.Printf("Countries:  %s\n", strings.Join(names, ", "))

	presets := engine.Presets()
	descriptions := make([]string, len(presets))
	for i, p := range presets {
		descriptions[i] = fmt.Sprintf("%s (%s)", p.Description, p.ID)
	}
	fmt.Printf("Presets:    %s\n", strings.Join(descriptions, ", "))
	return nil
}

// datasetFile is the YAML layout of a provider dataset dump.
type datasetFile struct {
	Servers []struct {
		ID                string   `yaml:"id"`
		Hostname          string   `yaml:"hostname"`
		IPAddresses       []string `yaml:"ip_addresses"`
		CountryCode       string   `yaml:"country_code"`
		OtherCountryCodes []string `yaml:"other_country_codes"`
		Area              string   `yaml:"area"`
		CategoryName      string   `yaml:"category_name"`
		ConfigurationIDs  []string `yaml:"configuration_ids"`
		PresetIDs         []string `yaml:"preset_ids"`
	} `yaml:"servers"`
	Presets []struct {
		ID              string `yaml:"id"`
		ConfigurationID string `yaml:"configuration_id"`
		Description     string `yaml:"description"`
	} `yaml:"presets"`
}

// ImportDataset ingests a provider dataset from a YAML file, replacing
// the provider's current index.
func (c *CLI) ImportDataset(ctx context.Context, providerID, path string) error {
	if providerID == "" {
		return errors.New("a provider id is required")
	}
	ctx, cancel := context.WithTimeout(ctx, common.SaveTimeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return common.WrapError(err, "failed to read dataset file")
	}

	var file datasetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return common.WrapError(err, "failed to parse dataset file")
	}

	servers := make([]provider.Server, 0, len(file.Servers))
	for _, s := range file.Servers {
		servers = append(servers, provider.Server{
			ID:                        s.ID,
			Hostname:                  s.Hostname,
			IPAddresses:               s.IPAddresses,
			ProviderID:                providerID,
			CountryCode:               s.CountryCode,
			OtherCountryCodes:         s.OtherCountryCodes,
			Area:                      s.Area,
			CategoryName:              s.CategoryName,
			SupportedConfigurationIDs: s.ConfigurationIDs,
			SupportedPresetIDs:        s.PresetIDs,
		})
	}
	presets := make([]provider.Preset, 0, len(file.Presets))
	for _, p := range file.Presets {
		presets = append(presets, provider.Preset{
			ID:              p.ID,
			ProviderID:      providerID,
			ConfigurationID: p.ConfigurationID,
			Description:     p.Description,
		})
	}

	if err := c.servers.ReplaceIndex(ctx, providerID, servers, presets); err != nil {
		return err
	}
	fmt.Printf("Imported %d servers and %d presets for provider %s\n",
		len(servers), len(presets), providerID)
	return nil
}

// SetCredential prompts for a secret and stores it for a profile/module
// pair.
func (c *CLI) SetCredential(ctx context.Context, nameOrID, moduleID string) error {
	p, err := c.resolveProfile(ctx, nameOrID)
	if err != nil {
		return err
	}

	module, ok := findModule(p, moduleID)
	if !ok {
		return fmt.Errorf("no module %q in profile %s", moduleID, p.Name())
	}

	fmt.Printf("Secret for %s module %s: ", module.DisplayName(), shortID(module.ID))
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return common.WrapError(err, "failed to read secret")
	}

	if err := c.creds.Store(p.ID().String(), module.ID.String(), string(secret)); err != nil {
		return err
	}
	fmt.Println("Credential stored.")
	return nil
}

// resolveProfile finds a profile by exact name or id prefix.
func (c *CLI) resolveProfile(ctx context.Context, nameOrID string) (*profile.Profile, error) {
	infos, err := c.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, info := range infos {
		if info.Name == nameOrID || strings.HasPrefix(info.ID.String(), strings.ToLower(nameOrID)) {
			return c.profiles.Profile(ctx, info.ID)
		}
	}
	return nil, common.ErrProfileNotFound
}

// findModule locates a module by id prefix.
func findModule(p *profile.Profile, moduleID string) (profile.Module, bool) {
	for _, m := range p.Modules() {
		if strings.HasPrefix(m.ID.String(), strings.ToLower(moduleID)) {
			return m, true
		}
	}
	return profile.Module{}, false
}

// shortID truncates a uuid for display.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// PrintHelp prints CLI usage information.
func PrintHelp() {
	fmt.Println(`VPN Composer - profile composition and provider filtering

Usage:
  vpn-composer [options]

Options:
  -list                        List stored profiles
  -show <name|id>              Show the modules of a profile
  -delete <name|id>            Delete a profile
  -servers -provider <id>      List provider servers
      [-category <name>] [-country <code>] [-preset <id>]
  -facets -provider <id>       Show reachable filter facets
      [-category <name>] [-country <code>] [-preset <id>]
  -import <file> -provider <id>
                               Import a provider dataset from YAML
  -set-credential <name|id> -module <id>
                               Store a secret for a tunnel module
  -verbose                     Enable verbose logging
  -version                     Show version and exit
  -help                        Show this help`)
}
