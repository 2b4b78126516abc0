package generator

// section is a fixed block of the generated script
type section struct {
	name  string
	lines []string
}

// boilerplate is emitted verbatim in every document, before the key bindings
var boilerplate = []section{
	{
		name: "Graphics Settings",
		lines: []string{
			"fps_max 0",
			"fps_max_ui 120",
			"r_fullscreen_gamma 2.2",
			"r_show_build_info true",
			"cl_showfps 0",
		},
	},
	{
		name: "Sound Settings",
		lines: []string{
			"volume 0.5",
			"snd_headphone_eq 0",
			"snd_spatialize_lerp 0",
			"snd_menumusic_volume 0",
			"snd_roundstart_volume 0",
			"snd_roundend_volume 0",
			"snd_mvp_volume 0",
			"snd_mute_losefocus true",
			"voice_scale 0.4",
		},
	},
	{
		name: "Network Settings",
		lines: []string{
			"rate 786432",
			"cl_interp_ratio 1",
			"mm_dedicated_search_maxping 60",
		},
	},
}

// BoilerplateSections returns the names of the fixed sections in emission order
func BoilerplateSections() []string {
	names := make([]string, len(boilerplate))
	for i, s := range boilerplate {
		names[i] = s.name
	}
	return names
}
