package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"questhunt/internal/config"
	"questhunt/internal/model"
	"questhunt/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var tasks = []model.Task{
	{
		Title:        "The Welcome Arch",
		Description:  "Find the grand entrance where every attendee begins their journey. Look for the structure that frames the first impression of the conference.",
		LocationHint: "Near the main entrance / registration area",
		DetailedHint: "It's right behind the badge pick-up desks — look up!",
		Points:       100,
		Order:        1,
	},
	{
		Title:        "The Innovation Wall",
		Description:  "Somewhere in the venue, sponsors have left their mark on a massive display. Find the wall covered in logos and futuristic graphics.",
		LocationHint: "Main hall / exhibition area",
		DetailedHint: "Check the corridor between Hall A and Hall B.",
		Points:       100,
		Order:        2,
	},
	{
		Title:        "The Hidden Garden",
		Description:  "Not everything at this conference is indoors. Find the outdoor space where attendees go to recharge.",
		LocationHint: "Outdoor / terrace area",
		DetailedHint: "Follow the signs to the \"Chill Zone\" on level 0.",
		Points:       150,
		Order:        3,
	},
	{
		Title:        "The Speaker's Podium",
		Description:  "Every great idea starts on a stage. Find the main keynote stage and snap a photo of the podium before the next talk begins.",
		LocationHint: "Main auditorium",
		DetailedHint: "It's the largest room in the venue — follow the crowd!",
		Points:       100,
		Order:        4,
	},
	{
		Title:        "The Coffee Oracle",
		Description:  "Legend says there's a barista here who knows the future of tech. Find the best coffee spot in the venue and capture the moment.",
		LocationHint: "Food & beverage area",
		DetailedHint: "Level 1, next to the workshop rooms. Look for the longest queue.",
		Points:       100,
		Order:        5,
	},
	{
		Title:        "The Secret QR Code",
		Description:  "Hidden in plain sight, a QR code has been placed somewhere unusual. Find it, scan it, and take a selfie with it.",
		LocationHint: "Could be anywhere!",
		DetailedHint: "Check the bathroom mirrors... yes, really.",
		Points:       200,
		Order:        6,
	},
	{
		Title:        "Team Spirit",
		Description:  "Gather ALL your team members, find the conference mascot (or mascot poster), and take a group photo together.",
		LocationHint: "Registration / info desk area",
		DetailedHint: "The mascot standee is next to the info booth near entrance B.",
		Points:       150,
		Order:        7,
	},
	{
		Title:        "The Vintage Corner",
		Description:  "Somewhere in this modern venue, a piece of computing history is on display. Find the retro tech exhibit and photograph it.",
		LocationHint: "Exhibition / sponsor booths",
		DetailedHint: "Booth #42 — \"The Museum of Code\" pop-up.",
		Points:       150,
		Order:        8,
	},
}

var sideQuests = []model.SideQuest{
	{
		Title:       "Best Team Selfie",
		Description: "Take the most creative team selfie anywhere in the venue.",
		IsActive:    true,
	},
	{
		Title:       "Swag Hunter",
		Description: "Photograph the most unusual piece of sponsor swag you can find.",
		IsActive:    true,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	if _, err := db.Collection("tasks").DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear tasks: %v", err)
	}
	fmt.Println("Cleared existing tasks")

	taskRepo := repository.NewTaskRepo(db)
	now := time.Now()
	for i := range tasks {
		tasks[i].IsActive = true
		tasks[i].CreatedAt = now
		if err := taskRepo.Create(ctx, &tasks[i]); err != nil {
			log.Fatalf("Failed to insert task %q: %v", tasks[i].Title, err)
		}
	}
	fmt.Printf("Seeded %d tasks\n", len(tasks))

	questRepo := repository.NewSideQuestRepo(db)
	for i := range sideQuests {
		sideQuests[i].CreatedAt = now
		if err := questRepo.Create(ctx, &sideQuests[i]); err != nil {
			log.Fatalf("Failed to insert side quest %q: %v", sideQuests[i].Title, err)
		}
	}
	fmt.Printf("Seeded %d side quests\n", len(sideQuests))

	fmt.Println("Done")
}
