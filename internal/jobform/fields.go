package jobform

import (
	"fmt"

	"referral-network-api/internal/models"
)

// setField writes value into the named field of d.
func setField(d *JobForm, field string, value interface{}) error {
	bad := fmt.Errorf("invalid value for %s", field)
	switch field {
	case FieldTitle, FieldDescription, FieldLocationCity:
		s, ok := value.(string)
		if !ok {
			return bad
		}
		switch field {
		case FieldTitle:
			d.Title = s
		case FieldDescription:
			d.Description = s
		default:
			d.LocationCity = s
		}
	case FieldRequirements:
		switch v := value.(type) {
		case []models.Requirement:
			d.Requirements = v
		case []string:
			reqs := make([]models.Requirement, len(v))
			for i, text := range v {
				reqs[i] = models.Requirement{Text: text, Required: true}
			}
			d.Requirements = reqs
		default:
			return bad
		}
	case FieldSkills:
		v, ok := value.([]string)
		if !ok {
			return bad
		}
		d.Skills = v
	case FieldSalary:
		// The pair form: [2]*int64{min, max}.
		v, ok := value.([2]*int64)
		if !ok {
			return bad
		}
		d.SalaryMin, d.SalaryMax = v[0], v[1]
	case FieldSalaryMin, FieldSalaryMax:
		p, err := int64Ptr(value)
		if err != nil {
			return bad
		}
		if field == FieldSalaryMin {
			d.SalaryMin = p
		} else {
			d.SalaryMax = p
		}
	case FieldLocationType:
		s, ok := stringish(value)
		if !ok {
			return bad
		}
		d.LocationType = models.LocationType(s)
	case FieldExperienceLevel:
		s, ok := stringish(value)
		if !ok {
			return bad
		}
		d.ExperienceLevel = models.ExperienceLevel(s)
	case FieldJobType:
		s, ok := stringish(value)
		if !ok {
			return bad
		}
		d.JobType = models.JobType(s)
	case FieldSubscriptionTier:
		s, ok := stringish(value)
		if !ok {
			return bad
		}
		d.SubscriptionTier = models.SubscriptionTier(s)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func stringish(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case models.LocationType:
		return string(v), true
	case models.ExperienceLevel:
		return string(v), true
	case models.JobType:
		return string(v), true
	case models.SubscriptionTier:
		return string(v), true
	}
	return "", false
}

func int64Ptr(value interface{}) (*int64, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *int64:
		return v, nil
	case int64:
		return &v, nil
	case int:
		n := int64(v)
		return &n, nil
	case float64:
		n := int64(v)
		return &n, nil
	}
	return nil, fmt.Errorf("not a number")
}
