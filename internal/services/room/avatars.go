package room

import "github.com/wordtide/wordtide-go/internal/model"

// seaCreatures is the pool of display avatars assigned at join time
var seaCreatures = []model.Avatar{
	{Name: "Octopus", Emoji: "🐙", Color: "#e56997"},
	{Name: "Dolphin", Emoji: "🐬", Color: "#4f9de0"},
	{Name: "Whale", Emoji: "🐋", Color: "#3b6fb5"},
	{Name: "Crab", Emoji: "🦀", Color: "#e0654f"},
	{Name: "Turtle", Emoji: "🐢", Color: "#4fb573"},
	{Name: "Pufferfish", Emoji: "🐡", Color: "#e0b84f"},
	{Name: "Squid", Emoji: "🦑", Color: "#9b6fd6"},
	{Name: "Shark", Emoji: "🦈", Color: "#6b7f94"},
	{Name: "Seahorse", Emoji: "🦄", Color: "#56c7c2"},
	{Name: "Jellyfish", Emoji: "🪼", Color: "#c78ade"},
}
