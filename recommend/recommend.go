package recommend

import (
	"fmt"
	"strings"

	"github.com/jsphweid/midicoach/model"
	"github.com/jsphweid/midicoach/theory"
)

type rec = model.Recommendation

// Recommend builds every suggestion list from the analysis. It never fails
// and the same inputs always give the same output.
func Recommend(a *model.AnalysisResult, prefs model.UserPreferences) model.RecommendationSet {
	if a == nil {
		a = &model.AnalysisResult{}
	}
	goals := prefs.Goals
	if goals == nil {
		goals = []model.Goal{}
	}
	return model.RecommendationSet{
		Harmonic:             harmonic(a),
		Melodic:              melodic(a),
		Rhythmic:             rhythmic(a),
		Structural:           structural(a),
		Arrangement:          arrangement(a),
		Development:          development(),
		GenreTips:            genreTips(prefs.TargetGenre),
		PersonalizedPriority: priority(prefs),
		UserContext: model.UserContext{
			Goals:       goals,
			TargetGenre: prefs.TargetGenre,
			Notes:       prefs.Notes,
		},
	}
}

func keyName(k model.KeySignature) string {
	return model.PitchClassName(k.Root)
}

func mode(k model.KeySignature) model.Mode {
	if k.Mode == "" {
		return model.ModeMajor
	}
	return k.Mode
}

func harmonic(a *model.AnalysisResult) []rec {
	key := a.Key
	key.Mode = mode(key)
	chords := a.Chords.Chords
	out := []rec{}

	if len(chords) < 4 {
		advice := "Explore diatonic chords in your key."
		if unused := theory.UnusedDiatonicChords(key, chords); len(unused) > 0 {
			if len(unused) > 3 {
				unused = unused[:3]
			}
			advice = "Try adding: " + strings.Join(unused, ", ")
		}
		out = append(out, rec{
			Category:       "Chord Progression",
			Title:          "Extend your chord progression",
			Description:    "Your piece has a short chord progression. Consider adding more chords for harmonic interest.",
			SpecificAdvice: advice,
		})
	}

	out = append(out, rec{
		Category:       "Advanced Harmony",
		Title:          "Add secondary dominants",
		Description:    "Secondary dominants can add sophisticated harmonic color.",
		SpecificAdvice: theory.SecondaryDominants(key.Root, key.Mode),
	})

	if key.Mode == model.ModeMajor {
		out = append(out, rec{
			Category:       "Modal Color",
			Title:          "Try modal interchange",
			Description:    "Borrow chords from the parallel minor key for emotional depth.",
			SpecificAdvice: theory.ModalInterchange(key.Root),
		})
	}

	if len(chords) > 0 {
		out = append(out, progressionFeedback(key, chords))
	}

	out = append(out, rec{
		Category:       "Voice Leading",
		Title:          "Smooth voice leading",
		Description:    "Consider voice leading principles for smoother harmonic transitions.",
		SpecificAdvice: "Move chord tones by the smallest intervals possible between changes.",
	})
	return out
}

func progressionFeedback(key model.KeySignature, chords []model.ChordSymbol) rec {
	report := theory.ProgressionQuality(chords, key)
	advice := append([]string(nil), report.Suggestions...)

	last := chords[len(chords)-1]
	if degree, ok := theory.DegreeOfPitchClass(last.Root, key.Root, key.Mode); ok {
		var next []string
		for _, s := range theory.SuggestNextChords(key.Root, key.Mode, degree) {
			next = append(next, fmt.Sprintf("%s (%s, %s)", s.Chord, s.Function, s.Strength))
		}
		if len(next) > 0 {
			advice = append(advice, fmt.Sprintf("From %s try: %s", last.Name(), strings.Join(next, ", ")))
		}
	}
	if len(advice) == 0 {
		advice = append(advice, "Keep the functional movement and vary the rhythm of the chord changes.")
	}

	return rec{
		Category: "Progression Quality",
		Title:    "Progression strength: " + report.Quality,
		Description: fmt.Sprintf("%s of the chord changes move by strong or moderate root motion.",
			report.FunctionalStrength),
		SpecificAdvice: strings.Join(advice, "; "),
	}
}

func melodic(a *model.AnalysisResult) []rec {
	key := a.Key
	key.Mode = mode(key)
	name := keyName(key)
	span := a.Melody.Range
	out := []rec{}

	switch {
	case span < 12:
		out = append(out, rec{
			Category:       "Melodic Range",
			Title:          "Expand melodic range",
			Description:    fmt.Sprintf("Your melody spans %d semitones. Consider expanding for more dramatic effect.", span),
			SpecificAdvice: fmt.Sprintf("Try extending melody up to %s in the next octave or down to lower register.", name),
		})
	case span > 24:
		out = append(out, rec{
			Category:       "Melodic Range",
			Title:          "Consider melodic focus",
			Description:    fmt.Sprintf("Your melody has a wide range (%d semitones). Consider focusing on a specific register.", span),
			SpecificAdvice: "Create contrast by having sections focus on different octaves.",
		})
	}

	switch a.Melody.Contour {
	case "Static":
		out = append(out, rec{
			Category:       "Melodic Movement",
			Title:          "Add melodic movement",
			Description:    "Your melody is quite static. Add more pitch variation for interest.",
			SpecificAdvice: "Try incorporating steps and leaps to create melodic curves.",
		})
	case "Ascending":
		out = append(out, rec{
			Category:       "Melodic Balance",
			Title:          "Balance ascending motion",
			Description:    "Your melody tends to ascend. Add descending passages for balance.",
			SpecificAdvice: "Create melodic peaks followed by gentle descents.",
		})
	case "Descending":
		out = append(out, rec{
			Category:       "Melodic Balance",
			Title:          "Balance descending motion",
			Description:    "Your melody tends to descend. Add ascending passages for lift.",
			SpecificAdvice: "Build energy with ascending sequences and phrases.",
		})
	}

	ideas := theory.MelodyIdeas(key.Root, key.Mode)
	for _, idea := range ideas[:2] {
		out = append(out, rec{
			Category:       "Melodic Ideas",
			Title:          idea.Type,
			Description:    idea.Description,
			SpecificAdvice: fmt.Sprintf("This works well in %s %s and can add melodic interest.", name, key.Mode),
		})
	}
	return out
}

func rhythmic(a *model.AnalysisResult) []rec {
	out := []rec{}

	switch a.Rhythm.Complexity {
	case "Simple":
		out = append(out, rec{
			Category:       "Rhythmic Interest",
			Title:          "Add rhythmic variety",
			Description:    "Your rhythm is quite simple. Consider adding syncopation or varied note values.",
			SpecificAdvice: "Try using dotted rhythms, triplets, or off-beat accents.",
		})
	case "Complex":
		out = append(out, rec{
			Category:       "Rhythmic Balance",
			Title:          "Balance complex rhythms",
			Description:    "Your rhythm is complex. Consider adding simpler sections for contrast.",
			SpecificAdvice: "Use simple rhythms in verses and complex rhythms in choruses.",
		})
	}

	bpm := a.Tempo.AverageBPM
	if bpm == 0 {
		bpm = 120
	}
	switch {
	case bpm < 80:
		out = append(out, rec{
			Category:       "Energy and Pace",
			Title:          "Consider energy levels",
			Description:    fmt.Sprintf("Your tempo (%g BPM) is quite slow. This works for ballads but consider varying pace.", bpm),
			SpecificAdvice: "Add a bridge or section with double-time feel to create contrast.",
		})
	case bpm > 160:
		out = append(out, rec{
			Category:       "Energy and Pace",
			Title:          "Balance high energy",
			Description:    fmt.Sprintf("Your tempo (%g BPM) is quite fast. Consider adding slower sections for contrast.", bpm),
			SpecificAdvice: "Use a half-time feel in verses or add a slower bridge section.",
		})
	}

	return append(out, rec{
		Category:       "Groove Development",
		Title:          "Develop rhythmic motifs",
		Description:    "Create rhythmic patterns that repeat and develop throughout the song.",
		SpecificAdvice: "Establish a core rhythmic motif and vary it in different sections.",
	})
}

func structural(a *model.AnalysisResult) []rec {
	measures := a.Structure.TotalMeasures
	out := []rec{}

	switch {
	case measures < 16:
		out = append(out, rec{
			Category:       "Song Length",
			Title:          "Extend song structure",
			Description:    fmt.Sprintf("Your piece is %d measures long. Consider extending for a complete song.", measures),
			SpecificAdvice: "Add a bridge section, second verse, or instrumental break.",
		})
	case measures > 100:
		out = append(out, rec{
			Category:       "Song Length",
			Title:          "Consider song focus",
			Description:    fmt.Sprintf("Your piece is %d measures long. Consider if all sections are necessary.", measures),
			SpecificAdvice: "Edit for the strongest musical ideas or create an extended/short version.",
		})
	}

	if len(a.Structure.Sections) < 3 {
		out = append(out, rec{
			Category:       "Section Variety",
			Title:          "Add contrasting sections",
			Description:    "Consider adding more contrasting sections for musical interest.",
			SpecificAdvice: "Try adding a bridge with different harmony, melody, or rhythm.",
		})
	}

	return append(out,
		rec{
			Category:       "Song Form",
			Title:          "Consider classic song forms",
			Description:    "Traditional song forms can provide effective structure.",
			SpecificAdvice: "Try AABA, ABABCB (verse-chorus-bridge), or theme and variations.",
		},
		rec{
			Category:       "Dynamic Arc",
			Title:          "Plan dynamic development",
			Description:    "Create an emotional journey through dynamic changes.",
			SpecificAdvice: "Build intensity toward a climax, then provide resolution.",
		},
	)
}

func arrangement(a *model.AnalysisResult) []rec {
	tracks := a.Basic.Tracks
	out := []rec{}

	switch {
	case tracks == 1:
		out = append(out, rec{
			Category:       "Instrumentation",
			Title:          "Add accompanying instruments",
			Description:    "Your piece uses one track. Consider adding accompaniment.",
			SpecificAdvice: "Add bass line, chord accompaniment, or percussion to support the melody.",
		})
	case tracks > 8:
		out = append(out, rec{
			Category:       "Arrangement Focus",
			Title:          "Consider arrangement clarity",
			Description:    fmt.Sprintf("Your piece uses %d tracks. Ensure each part has a clear role.", tracks),
			SpecificAdvice: "Consider which instruments play in which sections for clarity and impact.",
		})
	}

	return append(out,
		rec{
			Category:       "Texture Variety",
			Title:          "Vary musical texture",
			Description:    "Different sections can use different textural approaches.",
			SpecificAdvice: "Try solo melody, harmony, counterpoint, or unison sections for contrast.",
		},
		rec{
			Category:       "Production Ideas",
			Title:          "Consider production elements",
			Description:    "Modern production can enhance your musical ideas.",
			SpecificAdvice: "Add reverb for space, compression for punch, or effects for character.",
		},
		rec{
			Category:       "Genre Elements",
			Title:          "Explore genre characteristics",
			Description:    "Different genres have characteristic arrangement elements.",
			SpecificAdvice: "Research arrangement techniques from genres that inspire you.",
		},
	)
}

var developmentStrategies = []rec{
	{
		Category:       "Motivic Development",
		Title:          "Develop musical motifs",
		Description:    "Take short musical ideas and develop them throughout the piece.",
		SpecificAdvice: "Use techniques like sequence, inversion, augmentation, or fragmentation.",
	},
	{
		Category:       "Harmonic Development",
		Title:          "Vary harmonic rhythm",
		Description:    "Change how often chords change in different sections.",
		SpecificAdvice: "Slow harmonic rhythm for verses, faster for choruses, or vice versa.",
	},
	{
		Category:       "Interactive Elements",
		Title:          "Use call and response",
		Description:    "Create dialogue between different instruments or sections.",
		SpecificAdvice: "Have melody answered by harmony, or different instruments trading phrases.",
	},
	{
		Category:       "Textural Building",
		Title:          "Build through layering",
		Description:    "Add instruments progressively to build energy and complexity.",
		SpecificAdvice: "Start simple and add elements each section or phrase.",
	},
	{
		Category:       "Musical Contrast",
		Title:          "Use contrast effectively",
		Description:    "Contrast in dynamics, rhythm, harmony, or texture creates interest.",
		SpecificAdvice: "Follow loud with soft, complex with simple, high with low.",
	},
}

func development() []rec {
	return append([]rec(nil), developmentStrategies...)
}

func genreTips(genre model.Genre) []rec {
	out := []rec{}
	if genre == "" {
		return out
	}
	for _, tip := range theory.GenreTips(genre) {
		out = append(out, rec{
			Category:       theory.Title(genre) + " Style",
			Title:          tip.Title,
			Description:    tip.Description,
			SpecificAdvice: fmt.Sprintf("This is essential for authentic %s sound.", genre),
		})
	}
	return out
}

var priorities = map[model.Goal]rec{
	model.GoalHarmony: {
		Category:       "Your Priority: Harmony",
		Title:          "Chord Progression Enhancement",
		Description:    "Focus on improving your harmonic movement and chord relationships.",
		SpecificAdvice: "Start with strong functional progressions like ii-V-I or vi-IV-I-V.",
	},
	model.GoalMelody: {
		Category:       "Your Priority: Melody",
		Title:          "Melodic Development",
		Description:    "Create more memorable and engaging melodic lines.",
		SpecificAdvice: "Use a mix of steps and leaps, create melodic peaks, and repeat important motifs.",
	},
	model.GoalRhythm: {
		Category:       "Your Priority: Rhythm",
		Title:          "Rhythmic Interest",
		Description:    "Add rhythmic variety and groove to your music.",
		SpecificAdvice: "Try syncopation, varied note values, and rhythmic displacement.",
	},
	model.GoalStructure: {
		Category:       "Your Priority: Structure",
		Title:          "Song Organization",
		Description:    "Improve the overall flow and organization of your song.",
		SpecificAdvice: "Plan clear sections with intro, verse, chorus, bridge, and outro.",
	},
	model.GoalArrangement: {
		Category:       "Your Priority: Arrangement",
		Title:          "Instrumentation & Production",
		Description:    "Enhance the overall sound through better arrangement.",
		SpecificAdvice: "Layer instruments thoughtfully, create space in the mix, and vary textures.",
	},
}

// priority mirrors the selected goals in the fixed goal order.
func priority(prefs model.UserPreferences) []rec {
	out := []rec{}
	for _, g := range model.Goals {
		if !prefs.HasGoal(g) {
			continue
		}
		if g == model.GoalGenre {
			if prefs.TargetGenre == "" {
				continue
			}
			title := theory.Title(prefs.TargetGenre)
			out = append(out, rec{
				Category:       "Your Priority: " + title + " Style",
				Title:          title + " Authenticity",
				Description:    fmt.Sprintf("Make your music sound more authentically %s.", prefs.TargetGenre),
				SpecificAdvice: fmt.Sprintf("Study classic %s songs and incorporate their characteristic elements.", prefs.TargetGenre),
			})
			continue
		}
		out = append(out, priorities[g])
	}
	return out
}
