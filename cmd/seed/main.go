package main

import (
	"containerquote/config"
	"containerquote/internal/engine"
	"containerquote/internal/model"
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	coll := db.Collection("configurations")

	now := time.Now()
	doc := model.Configuration{
		ID:              primitive.NewObjectID().Hex(),
		ProductID:       "container-20ft",
		Title:           "20ft Site Office Container",
		BasePrice:       5000,
		DefaultImageRef: "containers/20ft/base-front.jpg",
		Questions: []model.Question{
			{
				Key:           "aircon",
				Label:         "Air Conditioning",
				Kind:          model.InputVisual,
				Required:      true,
				ShowInSummary: true,
				Options: []model.Option{
					{Slug: "aircon_yes", Label: "Yes", PriceDelta: 850, PriceSign: model.SignAddition, AffectsImage: true},
					{Slug: "aircon_no", Label: "No", PriceDelta: 0, PriceSign: model.SignAddition},
				},
			},
			{
				Key:   "fitout",
				Label: "Delivery Fit-out",
				Kind:  model.InputDropdown,
				Conditional: &model.Conditional{
					DependsOnQuestionKey: "aircon",
					RequiredOptionSlug:   "aircon_yes",
				},
				Options: []model.Option{
					{Slug: "fitout_standard", Label: "Standard Fit-out", PriceDelta: 200, PriceSign: model.SignAddition},
					{Slug: "fitout_deluxe", Label: "Deluxe Fit-out", PriceDelta: 480, PriceSign: model.SignAddition},
				},
			},
			{
				Key:           "flooring",
				Label:         "Flooring",
				Kind:          model.InputDropdown,
				ShowInSummary: true,
				Options: []model.Option{
					{Slug: "floor_ply", Label: "Plywood", PriceDelta: 0, PriceSign: model.SignAddition},
					{Slug: "floor_vinyl", Label: "Vinyl", PriceDelta: 320, PriceSign: model.SignAddition, AffectsImage: true},
				},
			},
			{
				Key:   "extras",
				Label: "Extras",
				Kind:  model.InputCheckbox,
				Options: []model.Option{
					{Slug: "extra_shelving", Label: "Shelving Package", PriceDelta: 120, PriceSign: model.SignAddition},
					{Slug: "extra_whirlybird", Label: "Whirlybird Vent", PriceDelta: 95, PriceSign: model.SignAddition, AffectsImage: true},
					{Slug: "extra_trade_in", Label: "Trade-in Credit", PriceDelta: 400, PriceSign: model.SignDeduction},
					{Slug: "extra_assembly", Label: "On-site Assembly", PriceDelta: 650, PriceSign: model.SignAddition, Role: model.RoleAssembly},
				},
			},
		},
		ImageRules: []model.ImageRule{
			{MatchTags: []string{"aircon_yes"}, ViewAngle: model.AngleFront, ImageRef: "containers/20ft/aircon-front.jpg"},
			{MatchTags: []string{"aircon_yes", "extra_whirlybird"}, ViewAngle: model.AngleFront, ImageRef: "containers/20ft/aircon-vent-front.jpg"},
			{MatchTags: []string{"extra_whirlybird"}, ViewAngle: model.AngleSide, ImageRef: "containers/20ft/vent-side.jpg"},
			{MatchTags: []string{"floor_vinyl"}, ViewAngle: model.AngleInterior, ImageRef: "containers/20ft/vinyl-interior.jpg"},
			{MatchTags: []string{}, ViewAngle: model.AngleInterior, ImageRef: "containers/20ft/base-interior.jpg"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Same validation the catalog endpoint applies.
	if _, err := engine.Compile(&doc); err != nil {
		log.Fatalf("Seed configuration is invalid: %v", err)
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		log.Fatalf("Failed to insert configuration: %v", err)
	}

	log.Printf("Seeded configuration %s for product %s", doc.ID, doc.ProductID)
}
