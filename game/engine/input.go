package engine

import "fmt"

// InputKind tags a request for player-supplied data. Each kind declares a
// fixed field schema; submissions are validated against it before the
// suspended phase resumes.
type InputKind string

const (
	// InputDemandInfo asks for the current demand count of each food kind
	// on the board.
	InputDemandInfo InputKind = "demand_info"

	// InputDemandTiebreak asks the player to break a tie between foods
	// with equal demand.
	InputDemandTiebreak InputKind = "demand_tiebreak"

	// InputPlaceRestaurant asks where the new restaurant physically fits
	// near the card's target tile.
	InputPlaceRestaurant InputKind = "place_restaurant"

	// InputSoldItems asks which units the automa sold this dinnertime.
	InputSoldItems InputKind = "sold_items"

	// InputEarnings asks for the player's own dinnertime earnings.
	InputEarnings InputKind = "earnings"
)

// FieldType constrains a field's value in a submission.
type FieldType string

const (
	FieldInt        FieldType = "int"
	FieldBool       FieldType = "bool"
	FieldFoodItem   FieldType = "food_item"
	FieldFoodCounts FieldType = "food_counts"
)

// FieldSpec declares one field of an input request. Min and Max bound int
// fields when set; Options restricts a food field to the listed values.
type FieldSpec struct {
	Name        string     `json:"name"`
	Type        FieldType  `json:"type"`
	Required    bool       `json:"required"`
	Description string     `json:"description,omitempty"`
	Min         *int       `json:"min,omitempty"`
	Max         *int       `json:"max,omitempty"`
	Options     []FoodItem `json:"options,omitempty"`
}

func intPtr(n int) *int { return &n }

// InputRequest is what the engine publishes while suspended. Options is
// populated for tiebreak requests.
type InputRequest struct {
	Kind    InputKind   `json:"kind"`
	Prompt  string      `json:"prompt"`
	Fields  []FieldSpec `json:"fields"`
	Options []FoodItem  `json:"options,omitempty"`
}

// PlayerInput is a submission answering an InputRequest. Values are keyed
// by field name; numbers arrive as JSON numbers.
type PlayerInput struct {
	Kind   InputKind              `json:"kind"`
	Values map[string]interface{} `json:"values"`
}

func newDemandInfoRequest() *InputRequest {
	return &InputRequest{
		Kind:   InputDemandInfo,
		Prompt: "Report the current demand on the board for each food and drink.",
		Fields: []FieldSpec{
			{Name: "demand", Type: FieldFoodCounts, Required: true, Description: "demand per food kind"},
		},
	}
}

func newDemandTiebreakRequest(tied []FoodItem) *InputRequest {
	return &InputRequest{
		Kind:    InputDemandTiebreak,
		Prompt:  "Several foods are tied for the most demand. Pick one.",
		Options: tied,
		Fields: []FieldSpec{
			{Name: "item", Type: FieldFoodItem, Required: true, Description: "the chosen food", Options: tied},
		},
	}
}

// Map tiles are numbered 1..20 on every card category.
const (
	mapTileMin = 1
	mapTileMax = 20
)

func newPlaceRestaurantRequest(tile int) *InputRequest {
	return &InputRequest{
		Kind:   InputPlaceRestaurant,
		Prompt: fmt.Sprintf("Place the new restaurant as close as possible to tile %d and report where it landed.", tile),
		Fields: []FieldSpec{
			{Name: "tile", Type: FieldInt, Required: true, Description: "tile the restaurant was placed on", Min: intPtr(mapTileMin), Max: intPtr(mapTileMax)},
			{Name: "drive_in", Type: FieldBool, Required: false, Description: "whether it got a drive-in"},
		},
	}
}

func newSoldItemsRequest() *InputRequest {
	return &InputRequest{
		Kind:   InputSoldItems,
		Prompt: "Report how many units of each food the automa sold this dinnertime.",
		Fields: []FieldSpec{
			{Name: "sold", Type: FieldFoodCounts, Required: true, Description: "units sold per food kind"},
		},
	}
}

func newEarningsRequest() *InputRequest {
	return &InputRequest{
		Kind:   InputEarnings,
		Prompt: "Report your own earnings this dinnertime.",
		Fields: []FieldSpec{
			{Name: "amount", Type: FieldInt, Required: true, Description: "cash earned this turn", Min: intPtr(0)},
		},
	}
}

// validateInput checks a submission against the pending request's schema.
func validateInput(req *InputRequest, in *PlayerInput) error {
	if in == nil {
		return fmt.Errorf("%w: empty submission", ErrValidation)
	}
	if in.Kind != req.Kind {
		return fmt.Errorf("%w: expected %s input, got %s", ErrValidation, req.Kind, in.Kind)
	}
	for _, f := range req.Fields {
		v, present := in.Values[f.Name]
		if !present {
			if f.Required {
				return fmt.Errorf("%w: missing required field %q", ErrValidation, f.Name)
			}
			continue
		}
		if err := checkFieldType(f, v); err != nil {
			return err
		}
	}
	return nil
}

func checkFieldType(f FieldSpec, v interface{}) error {
	switch f.Type {
	case FieldInt:
		n, err := asInt(v)
		if err != nil {
			return fmt.Errorf("%w: field %q must be an integer", ErrValidation, f.Name)
		}
		if f.Min != nil && n < *f.Min {
			return fmt.Errorf("%w: field %q must be at least %d", ErrValidation, f.Name, *f.Min)
		}
		if f.Max != nil && n > *f.Max {
			return fmt.Errorf("%w: field %q must be at most %d", ErrValidation, f.Name, *f.Max)
		}
	case FieldBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: field %q must be a boolean", ErrValidation, f.Name)
		}
	case FieldFoodItem:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: field %q must be a food name", ErrValidation, f.Name)
		}
		if !validFoodItem(FoodItem(s)) {
			return fmt.Errorf("%w: unknown food %q in field %q", ErrValidation, s, f.Name)
		}
		if len(f.Options) > 0 {
			allowed := false
			for _, opt := range f.Options {
				if FoodItem(s) == opt {
					allowed = true
					break
				}
			}
			if !allowed {
				return fmt.Errorf("%w: %q is not one of the offered options for field %q", ErrValidation, s, f.Name)
			}
		}
	case FieldFoodCounts:
		m, ok := v.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: field %q must map food names to counts", ErrValidation, f.Name)
		}
		for k, raw := range m {
			if !validFoodItem(FoodItem(k)) {
				return fmt.Errorf("%w: unknown food %q in field %q", ErrValidation, k, f.Name)
			}
			n, err := asInt(raw)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: count for %q in field %q must be a non-negative integer", ErrValidation, k, f.Name)
			}
		}
	}
	return nil
}

func validFoodItem(f FoodItem) bool {
	for _, item := range AllFoodItems {
		if item == f {
			return true
		}
	}
	return false
}

func asInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("not an integer")
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("not an integer")
	}
}

// intField reads a validated int field from a submission.
func intField(in *PlayerInput, name string) int {
	n, _ := asInt(in.Values[name])
	return n
}

// boolField reads a validated bool field from a submission.
func boolField(in *PlayerInput, name string) bool {
	b, _ := in.Values[name].(bool)
	return b
}

// foodField reads a validated food item field from a submission.
func foodField(in *PlayerInput, name string) FoodItem {
	s, _ := in.Values[name].(string)
	return FoodItem(s)
}

// foodCountsField reads a validated food counts field from a submission.
func foodCountsField(in *PlayerInput, name string) map[FoodItem]int {
	out := make(map[FoodItem]int)
	m, _ := in.Values[name].(map[string]interface{})
	for k, raw := range m {
		n, _ := asInt(raw)
		out[FoodItem(k)] = n
	}
	return out
}
