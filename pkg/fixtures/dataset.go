package fixtures

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/genielabs/genie-admin/pkg/models"
)

// AdminAccount is an admin identity plus the clear-text password accepted by the demo backend.
type AdminAccount struct {
	models.Admin `yaml:",inline"`
	Password     string `yaml:"password"`
}

type Dataset struct {
	Admins []AdminAccount         `yaml:"admins"`
	Users  []models.UserDetail    `yaml:"users"`
	Dates  []models.ScheduledDate `yaml:"dates"`
}

// Dataset generates userCount users, the given admins (plus one admin per remaining role)
// and a handful of dates curated by the first GENIE admin.
func (b *Builder) Dataset(userCount int, admins ...AdminAccount) *Dataset {
	ds := &Dataset{Admins: admins}

	have := make(map[models.AdminRole]bool)
	for _, a := range admins {
		have[a.Role] = true
	}
	for _, role := range []models.AdminRole{models.AdminRoleGenie, models.AdminRoleSupport, models.AdminRoleSuper} {
		if !have[role] {
			ds.Admins = append(ds.Admins, AdminAccount{Admin: b.Admin(role), Password: b.faker.Password(true, true, true, false, false, 14)})
		}
	}

	ds.Users = make([]models.UserDetail, userCount)
	for i := range ds.Users {
		ds.Users[i] = b.UserDetail()
	}

	var genieID string
	for _, a := range ds.Admins {
		if a.Role == models.AdminRoleGenie {
			genieID = a.AdminID
			break
		}
	}

	for i := 0; i+1 < len(ds.Users) && i < userCount/4*2; i += 2 {
		ds.Dates = append(ds.Dates, b.ScheduledDate(ds.Users[i].ID, ds.Users[i+1].ID, genieID))
	}

	return ds
}

func WriteYAML(path string, ds *Dataset) error {
	data, err := yaml.Marshal(ds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func LoadYAML(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return &ds, nil
}

// DemoDataset is Dataset with a GENIE admin that logs in with email and password.
func (b *Builder) DemoDataset(userCount int, email, password string) *Dataset {
	admin := b.Admin(models.AdminRoleGenie)
	admin.Email = email
	return b.Dataset(userCount, AdminAccount{Admin: admin, Password: password})
}
