package domain

import "encoding/json"

// Company is the company summary decoded from the /v4/company resource.
// Every field is optional because the API may omit any of them.
type Company struct {
	Name        *string `json:"name"`
	Founder     *string `json:"founder"`
	Founded     *int64  `json:"founded"`
	Employees   *int64  `json:"employees"`
	LaunchSites *int64  `json:"launch_sites"`
	Valuation   *int64  `json:"valuation"`
}

// UnmarshalJSON accepts both launch_sites and launchSites for the launch site count.
func (c *Company) UnmarshalJSON(data []byte) error {
	type plain Company
	aux := struct {
		*plain
		LaunchSitesCamel *int64 `json:"launchSites"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.LaunchSites == nil {
		c.LaunchSites = aux.LaunchSitesCamel
	}
	return nil
}
