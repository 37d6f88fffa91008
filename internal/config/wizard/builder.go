package wizard

import (
	"github.com/imamik/topocheck/internal/request"
)

// BuildRequest creates a request skeleton from the wizard result. Every
// selected config type gets an empty property map to fill in.
func BuildRequest(result *WizardResult) *request.Request {
	req := &request.Request{
		Name: result.BlueprintName,
		Blueprint: request.BlueprintSpec{
			Name:           result.BlueprintName,
			Stack:          result.Stack,
			Configurations: configEntries(result.BlueprintConfigTypes),
		},
		Configurations: configEntries(result.ClusterConfigTypes),
	}

	if result.HostGroup != "" {
		req.Blueprint.HostGroups = []request.HostGroupSpec{{
			Name:        result.HostGroup,
			Cardinality: "1",
			Components:  result.Components,
		}}
	}
	return req
}

func configEntries(types []string) []request.ConfigEntry {
	if len(types) == 0 {
		return nil
	}
	entries := make([]request.ConfigEntry, 0, len(types))
	for _, t := range types {
		entries = append(entries, request.ConfigEntry{
			t: {Properties: map[string]request.Value{}},
		})
	}
	return entries
}
