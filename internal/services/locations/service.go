package locations

import (
	"errors"
	"sort"
	"strings"

	"github.com/bazarhat/backend/internal/config"
)

var (
	ErrValidation  = errors.New("location invalid")
	ErrNoDivisions = errors.New("no divisions configured")
)

type Division struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

// Service answers which division/district pairs are valid listing
// locations. The set is static, loaded from config at startup.
type Service struct {
	divisions []Division
	index     map[string]map[string]struct{}
}

func NewService(divisions []config.DivisionMeta) *Service {
	mapped := make([]Division, 0, len(divisions))
	index := make(map[string]map[string]struct{}, len(divisions))
	for _, div := range divisions {
		name := strings.TrimSpace(div.Name)
		if name == "" {
			continue
		}

		districts := make([]string, 0, len(div.Districts))
		set := make(map[string]struct{}, len(div.Districts))
		for _, d := range div.Districts {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			districts = append(districts, d)
			set[strings.ToLower(d)] = struct{}{}
		}
		sort.Strings(districts)

		mapped = append(mapped, Division{Name: name, Districts: districts})
		index[strings.ToLower(name)] = set
	}

	return &Service{divisions: mapped, index: index}
}

func (s *Service) List() ([]Division, error) {
	if len(s.divisions) == 0 {
		return nil, ErrNoDivisions
	}
	return s.divisions, nil
}

func (s *Service) Districts(division string) ([]string, error) {
	for _, div := range s.divisions {
		if strings.EqualFold(div.Name, division) {
			return div.Districts, nil
		}
	}
	return nil, ErrValidation
}

// Validate checks a division/district pair. An empty district is allowed;
// an empty division is not.
func (s *Service) Validate(division, district string) error {
	set, ok := s.index[strings.ToLower(strings.TrimSpace(division))]
	if !ok {
		return ErrValidation
	}
	district = strings.TrimSpace(district)
	if district == "" {
		return nil
	}
	if _, ok := set[strings.ToLower(district)]; !ok {
		return ErrValidation
	}
	return nil
}
