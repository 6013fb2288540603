package model

// Centralized icons for the lesson screens.
const (
	IconDetect   = "🔍"
	IconTarget   = "🎯"
	IconCommand  = "📋" // Shown before every demoed command
	IconRun      = "🚀"
	IconDetails  = "📖"
	IconOK       = "✅"
	IconWarning  = "⚠️ "
	IconSimulate = "🎭"
	IconLive     = "🔥"
	IconPenguin  = "🐧"
	IconWave     = "👋"
)
