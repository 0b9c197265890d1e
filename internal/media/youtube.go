package media

import (
	"regexp"
	"strings"
)

// Video is a reference video link for a lesson topic.
type Video struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// curatedVideo pairs a topic keyword with its video. Entries are checked
// in order; broader keywords sit later so specific ones win.
type curatedVideo struct {
	Keyword string
	Video   Video
}

// curatedVideos is a hand-picked library for common media production
// topics, favoring established channels (StudioBinder, Film Riot,
// Peter McKinnon).
var curatedVideos = []curatedVideo{
	{"camera angles", Video{"https://www.youtube.com/watch?v=SlNviMsi0K0", "Camera Angles Explained - StudioBinder"}},
	{"shot types", Video{"https://www.youtube.com/watch?v=AyML8xuKfoc", "Ultimate Guide to Camera Shots - StudioBinder"}},
	{"composition", Video{"https://www.youtube.com/watch?v=O8i7OKbWmRM", "Composition in Film - StudioBinder"}},
	{"rule of thirds", Video{"https://www.youtube.com/watch?v=O8i7OKbWmRM", "Composition Techniques - StudioBinder"}},
	{"aperture", Video{"https://www.youtube.com/watch?v=YojL7UQTVhc", "Aperture Explained - Film Riot"}},
	{"shutter speed", Video{"https://www.youtube.com/watch?v=HYB67U89sKs", "Shutter Speed for Video"}},
	{"iso", Video{"https://www.youtube.com/watch?v=WEApFs0aDaE", "ISO Explained for Filmmakers"}},
	{"exposure triangle", Video{"https://www.youtube.com/watch?v=3eVjUrY9a9c", "Exposure Triangle - Peter McKinnon"}},
	{"lighting", Video{"https://www.youtube.com/watch?v=j_Sov3xmgwg", "Cinematic Lighting Techniques"}},
	{"three point lighting", Video{"https://www.youtube.com/watch?v=j_Sov3xmgwg", "3 Point Lighting Setup"}},
	{"audio", Video{"https://www.youtube.com/watch?v=U1dMlVwUsrA", "Audio Recording for Film"}},
	{"premiere pro", Video{"https://www.youtube.com/watch?v=Hls3Tp7JS8E", "Premiere Pro Tutorial for Beginners"}},
	{"editing", Video{"https://www.youtube.com/watch?v=O6ERELse_QY", "Video Editing Basics - Film Riot"}},
	{"color correction", Video{"https://www.youtube.com/watch?v=lxHnCXZgeQc", "Color Correction in Premiere Pro"}},
	{"color grading", Video{"https://www.youtube.com/watch?v=lxHnCXZgeQc", "Color Grading Tutorial"}},
	{"copyright", Video{"https://www.youtube.com/watch?v=1Jwo5qc78QU", "Copyright for Filmmakers"}},
	{"fair use", Video{"https://www.youtube.com/watch?v=1Jwo5qc78QU", "Fair Use Explained"}},
	{"storyboard", Video{"https://www.youtube.com/watch?v=RQsvhq28sOI", "How to Storyboard - StudioBinder"}},
	{"screenplay", Video{"https://www.youtube.com/watch?v=vrvawtrRxsw", "Screenwriting Basics"}},
	{"script", Video{"https://www.youtube.com/watch?v=vrvawtrRxsw", "How to Write a Script"}},
	{"documentary", Video{"https://www.youtube.com/watch?v=fMF0xQo-E8U", "Documentary Filmmaking Tips"}},
	{"interview", Video{"https://www.youtube.com/watch?v=R0LD7VHxYiE", "How to Film an Interview"}},
	{"b-roll", Video{"https://www.youtube.com/watch?v=mHZ6LGKnDc0", "B-Roll Techniques - Film Riot"}},
	{"green screen", Video{"https://www.youtube.com/watch?v=hRsrVjbYyiE", "Green Screen Tutorial"}},
	{"foley", Video{"https://www.youtube.com/watch?v=U_tqB4IZvMk", "Foley Sound Effects Explained"}},
	{"sound design", Video{"https://www.youtube.com/watch?v=U_tqB4IZvMk", "Sound Design for Film"}},
	{"music video", Video{"https://www.youtube.com/watch?v=p5rQHoaQpTw", "How to Make a Music Video"}},
	{"psa", Video{"https://www.youtube.com/watch?v=9sjkvYdoH9o", "How to Make a PSA"}},
	{"news", Video{"https://www.youtube.com/watch?v=vMnTZrFa-Wc", "Broadcast News Production"}},
	{"film history", Video{"https://www.youtube.com/watch?v=HCYJBwY-Qsc", "History of Cinema"}},
}

// FindVideo returns a reference video for a lesson topic, or nil when the
// library has no match. Exact containment in either direction wins; a
// second pass matches individual topic words longer than three characters.
func FindVideo(topic string) *Video {
	topicLower := strings.TrimSpace(strings.ToLower(topic))
	if topicLower == "" {
		return nil
	}

	for _, cv := range curatedVideos {
		if strings.Contains(topicLower, cv.Keyword) || strings.Contains(cv.Keyword, topicLower) {
			v := cv.Video
			return &v
		}
	}

	// Partial match on individual words
	for _, cv := range curatedVideos {
		for _, word := range strings.Fields(topicLower) {
			if len(word) > 3 && strings.Contains(cv.Keyword, word) {
				v := cv.Video
				return &v
			}
		}
	}

	return nil
}

var (
	youtuBeRE = regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`)
	youtubeRE = regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]+)`)
)

// VideoID extracts the YouTube video ID from a watch or short URL.
// Returns "" when the URL is not a recognized YouTube link.
func VideoID(url string) string {
	if url == "" {
		return ""
	}

	if strings.Contains(url, "youtu.be/") {
		if m := youtuBeRE.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	if strings.Contains(url, "youtube.com/watch") {
		if m := youtubeRE.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}
