// Package crafting resolves recipe crafting against caller-owned material,
// tool and skill state. Recipes and output items are immutable templates;
// every successful craft hands back a fresh copy.
package crafting

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"textquest/internal/dice"
	"textquest/internal/game"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

var (
	ErrUnknownRecipe   = errors.New("unknown recipe")
	ErrSkillTooLow     = errors.New("skill level too low")
	ErrMissingTool     = errors.New("missing required tool")
	ErrMissingMaterial = errors.New("missing required material")
)

// maxSuccessRate caps the skill bonus so expert recipes keep a failure chance.
const (
	maxSuccessRate = 0.95
	skillBonusStep = 0.05
)

// Material describes a raw crafting ingredient.
type Material struct {
	Name        string
	Description string
	Rarity      game.Rarity
	BaseValue   int
	Weight      float64
}

// Recipe is one entry in the recipe book.
type Recipe struct {
	Name               string
	Description        string
	Materials          map[string]int
	Difficulty         Difficulty
	CraftTime          int // seconds
	ExperienceGain     int
	SuccessRate        float64
	ToolsRequired      []string
	SkillRequired      string
	SkillLevelRequired int
}

// RecipeStatus reports whether one recipe is craftable with the given
// materials, plus what is short when it is not.
type RecipeStatus struct {
	Key              string
	Recipe           Recipe
	Output           *game.Item
	Craftable        bool
	MissingMaterials []string
}

// CraftResult is the outcome of a craft whose preconditions all passed.
// Success false means the quality roll failed after materials were spent.
type CraftResult struct {
	Success          bool
	Item             *game.Item
	ExperienceGained int
	SkillImproved    string
	CraftTime        int
	MaterialsLost    map[string]int
}

// Resolver owns the recipe book, the output templates and the material
// catalogue. Player state stays with the caller and is passed per call.
type Resolver struct {
	recipes   map[string]*Recipe
	outputs   map[string]game.Item
	materials map[string]Material
	roll      dice.Roller
}

func NewResolver(roll dice.Roller) *Resolver {
	return &Resolver{
		recipes:   defaultRecipes(),
		outputs:   defaultOutputs(),
		materials: defaultMaterials(),
		roll:      roll,
	}
}

// AvailableRecipes lists every recipe whose skill and tool gates pass.
// Recipes short on materials are included, flagged with what is missing;
// recipes behind a skill or tool gate are omitted entirely.
func (r *Resolver) AvailableRecipes(materials map[string]int, tools []string, skills map[string]int) []RecipeStatus {
	out := make([]RecipeStatus, 0, len(r.recipes))

	for _, key := range recipeOrder {
		recipe := r.recipes[key]

		if recipe.SkillRequired != "" && skills[recipe.SkillRequired] < recipe.SkillLevelRequired {
			continue
		}
		if missing := missingTools(recipe, tools); len(missing) > 0 {
			continue
		}

		status := RecipeStatus{
			Key:       key,
			Recipe:    *recipe,
			Craftable: true,
		}
		if output, ok := r.outputs[key]; ok {
			clone := output.Clone()
			status.Output = &clone
		}

		for _, material := range sortedKeys(recipe.Materials) {
			need := recipe.Materials[material]
			if have := materials[material]; have < need {
				status.Craftable = false
				status.MissingMaterials = append(status.MissingMaterials,
					fmt.Sprintf("%s (need %d, have %d)", material, need, have))
			}
		}

		out = append(out, status)
	}

	return out
}

// Craft runs one craft attempt. Precondition failures return a typed error
// and touch nothing; once materials are deducted the quality roll decides
// between a crafted item and a CraftResult reporting the loss.
func (r *Resolver) Craft(recipeKey string, materials map[string]int, tools []string, skills map[string]int) (*CraftResult, error) {
	recipe, ok := r.recipes[recipeKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecipe, recipeKey)
	}

	if recipe.SkillRequired != "" && skills[recipe.SkillRequired] < recipe.SkillLevelRequired {
		return nil, fmt.Errorf("%w: %s requires %s level %d",
			ErrSkillTooLow, recipe.Name, recipe.SkillRequired, recipe.SkillLevelRequired)
	}
	if missing := missingTools(recipe, tools); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingTool, strings.Join(missing, ", "))
	}
	for _, material := range sortedKeys(recipe.Materials) {
		need := recipe.Materials[material]
		if have := materials[material]; have < need {
			return nil, fmt.Errorf("%w: %s (need %d, have %d)", ErrMissingMaterial, material, need, have)
		}
	}

	for material, quantity := range recipe.Materials {
		materials[material] -= quantity
	}

	// Skill is read before the experience grant so this craft's own gain
	// never boosts its own roll.
	skillLevel := 0
	if recipe.SkillRequired != "" {
		skillLevel = skills[recipe.SkillRequired]
	}
	chance := min(maxSuccessRate, recipe.SuccessRate+skillBonusStep*float64(skillLevel))

	if r.roll.Float64() > chance {
		lost := make(map[string]int, len(recipe.Materials))
		for material, quantity := range recipe.Materials {
			lost[material] = quantity
		}
		return &CraftResult{Success: false, MaterialsLost: lost}, nil
	}

	output, ok := r.outputs[recipeKey]
	if !ok {
		return nil, fmt.Errorf("%w: no output for %q", ErrUnknownRecipe, recipeKey)
	}

	if recipe.SkillRequired != "" {
		skills[recipe.SkillRequired] += recipe.ExperienceGain
	}

	crafted := output.Clone()
	return &CraftResult{
		Success:          true,
		Item:             &crafted,
		ExperienceGained: recipe.ExperienceGain,
		SkillImproved:    recipe.SkillRequired,
		CraftTime:        recipe.CraftTime,
	}, nil
}

// Recipe returns a recipe and its output template by key.
func (r *Resolver) Recipe(key string) (Recipe, *game.Item, bool) {
	recipe, ok := r.recipes[key]
	if !ok {
		return Recipe{}, nil, false
	}
	var output *game.Item
	if item, ok := r.outputs[key]; ok {
		clone := item.Clone()
		output = &clone
	}
	return *recipe, output, true
}

// Materials lists the material catalogue in key order.
func (r *Resolver) Materials() []Material {
	out := make([]Material, 0, len(r.materials))
	for _, key := range sortedMaterialKeys(r.materials) {
		out = append(out, r.materials[key])
	}
	return out
}

// Material returns one catalogue entry by key.
func (r *Resolver) Material(key string) (Material, bool) {
	m, ok := r.materials[key]
	return m, ok
}

// IsIngredient reports whether key names something the recipe book consumes:
// a catalogued material, or an off-catalogue recipe ingredient like water.
func (r *Resolver) IsIngredient(key string) bool {
	if _, ok := r.materials[key]; ok {
		return true
	}
	for _, recipe := range r.recipes {
		if _, ok := recipe.Materials[key]; ok {
			return true
		}
	}
	return false
}

// IsTool reports whether any recipe requires the named tool.
func (r *Resolver) IsTool(name string) bool {
	for _, recipe := range r.recipes {
		for _, tool := range recipe.ToolsRequired {
			if strings.EqualFold(tool, name) {
				return true
			}
		}
	}
	return false
}

func missingTools(recipe *Recipe, tools []string) []string {
	var missing []string
	for _, tool := range recipe.ToolsRequired {
		found := false
		for _, have := range tools {
			if strings.EqualFold(have, tool) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, tool)
		}
	}
	return missing
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedMaterialKeys(m map[string]Material) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
