package domain

import (
	"encoding/json"
	"testing"
)

func TestCompanyJSON(t *testing.T) {
	t.Run("decodes the API shape", func(t *testing.T) {
		data := `{"name":"SpaceX","founder":"Elon Musk","founded":2002,"employees":9500,"launch_sites":3,"valuation":74000000000,"ceo":"Elon Musk"}`
		var c Company
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if c.Name == nil || *c.Name != "SpaceX" {
			t.Fatalf("\nwanted:\nSpaceX\ngot:\n%v", c.Name)
		}
		if c.LaunchSites == nil || *c.LaunchSites != 3 {
			t.Fatalf("\nwanted:\n3\ngot:\n%v", c.LaunchSites)
		}
		if c.Valuation == nil || *c.Valuation != 74000000000 {
			t.Fatalf("\nwanted:\n74000000000\ngot:\n%v", c.Valuation)
		}
	})

	t.Run("accepts the camel case launch site key", func(t *testing.T) {
		var c Company
		if err := json.Unmarshal([]byte(`{"name":"SpaceX","launchSites":4}`), &c); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if c.LaunchSites == nil || *c.LaunchSites != 4 {
			t.Fatalf("\nwanted:\n4\ngot:\n%v", c.LaunchSites)
		}
	})

	t.Run("every field is optional", func(t *testing.T) {
		var c Company
		if err := json.Unmarshal([]byte(`{}`), &c); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if c.Name != nil || c.Founder != nil || c.Founded != nil || c.Employees != nil || c.LaunchSites != nil || c.Valuation != nil {
			t.Fatalf("\nwanted:\nall nil\ngot:\n%+v", c)
		}
	})

	t.Run("wrong types fail", func(t *testing.T) {
		var c Company
		if err := json.Unmarshal([]byte(`{"employees":"many"}`), &c); err == nil {
			t.Fatal("\nwanted:\nerror\ngot:\nnil")
		}
	})
}
