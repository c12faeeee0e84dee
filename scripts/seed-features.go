// Seeds the feature-definition store with a starter content set. Run once
// against a fresh Redis instance:
//
//	REDIS_ADDR=localhost:6379 go run scripts/seed-features.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	redisclient "github.com/herosheet/sheet-api/internal/redis"
	featurerepo "github.com/herosheet/sheet-api/internal/repositories/feature"
)

func main() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client, err := redisclient.NewClient(addr, nil)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	repo, err := featurerepo.NewRedis(&featurerepo.RedisConfig{Client: client})
	if err != nil {
		log.Fatalf("failed to create feature repository: %v", err)
	}

	out, err := repo.PutBatch(context.Background(), featurerepo.PutBatchInput{
		Features: starterFeatures(),
	})
	if err != nil {
		log.Fatalf("failed to seed features: %v", err)
	}

	fmt.Printf("seeded %d feature definitions\n", out.Count)
}

// starterFeatures is the baseline content set. Features with registered
// effect implementations need no benefits here; the rest declare the flat
// bonuses the engine extracts.
func starterFeatures() []*pf.Feature {
	return []*pf.Feature{
		{
			Category:    pf.CategoryFeat,
			Name:        "dodge",
			DisplayName: "Dodge",
			Description: "You gain a +1 dodge bonus to your AC.",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "improved_initiative",
			DisplayName: "Improved Initiative",
			Description: "You get a +4 bonus on initiative checks.",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "iron_will",
			DisplayName: "Iron Will",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "great_fortitude",
			DisplayName: "Great Fortitude",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "lightning_reflexes",
			DisplayName: "Lightning Reflexes",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "toughness",
			DisplayName: "Toughness",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "weapon_finesse",
			DisplayName: "Weapon Finesse",
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "alertness",
			DisplayName: "Alertness",
			Benefits: []pf.Benefit{
				{Target: pf.SkillTarget(pf.SkillPerception), Value: 2, Type: "untyped"},
				{Target: pf.SkillTarget(pf.SkillSenseMotive), Value: 2, Type: "untyped"},
			},
		},
		{
			Category:    pf.CategoryFeat,
			Name:        "skill_focus_perception",
			DisplayName: "Skill Focus (Perception)",
			Benefits: []pf.Benefit{
				{Target: pf.SkillTarget(pf.SkillPerception), Value: 3, Type: "untyped"},
			},
		},
		{
			Category:    pf.CategoryTrait,
			Name:        "reactionary",
			DisplayName: "Reactionary",
		},
		{
			Category:    pf.CategoryTrait,
			Name:        "deft_dodger",
			DisplayName: "Deft Dodger",
			Benefits: []pf.Benefit{
				{Target: pf.SaveTarget(pf.SaveReflex), Value: 1, Type: "trait"},
			},
		},
		{
			Category:    pf.CategoryClassFeature,
			Name:        "rage",
			DisplayName: "Rage",
		},
		{
			Category:    pf.CategoryClassFeature,
			Name:        "ac_bonus",
			DisplayName: "AC Bonus",
		},
		{
			Category:    pf.CategoryClassFeature,
			Name:        "divine_grace",
			DisplayName: "Divine Grace",
		},
		{
			Category:    pf.CategoryClassFeature,
			Name:        "bravery",
			DisplayName: "Bravery",
			Benefits: []pf.Benefit{
				{Target: pf.SaveTarget(pf.SaveWill), Value: 1, Type: "untyped"},
			},
		},
		{
			Category:    pf.CategoryClassFeature,
			Name:        "overhand_chop",
			DisplayName: "Overhand Chop",
			Replaces:    []string{"class.bravery"},
		},
		{
			Category:    pf.CategoryArchetype,
			Name:        "two_handed_fighter",
			DisplayName: "Two-Handed Fighter",
			Grants:      []string{"class.overhand_chop"},
		},
		{
			Category:    pf.CategorySpell,
			Name:        "enlarge_person",
			DisplayName: "Enlarge Person",
		},
		{
			Category:    pf.CategorySpell,
			Name:        "shield_of_faith",
			DisplayName: "Shield of Faith",
			Benefits: []pf.Benefit{
				{Target: pf.TargetAC, Value: 2, Type: "deflection"},
			},
		},
	}
}
