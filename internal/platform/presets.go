package platform

func init() {
	register(youtube{})
	register(tiktok{})
	register(instagram{})
}

type youtube struct{}

func (youtube) Name() string           { return "youtube" }
func (youtube) Dimensions() (int, int) { return 1920, 1080 }
func (youtube) VideoCodec() string     { return "libx264" }
func (youtube) AudioCodec() string     { return "aac" }
func (youtube) AudioBitrate() string   { return "128k" }
func (youtube) CRF() int               { return 23 }

type tiktok struct{}

func (tiktok) Name() string           { return "tiktok" }
func (tiktok) Dimensions() (int, int) { return 1080, 1920 }
func (tiktok) VideoCodec() string     { return "libx264" }
func (tiktok) AudioCodec() string     { return "aac" }
func (tiktok) AudioBitrate() string   { return "128k" }
func (tiktok) CRF() int               { return 23 }

type instagram struct{}

func (instagram) Name() string           { return "instagram" }
func (instagram) Dimensions() (int, int) { return 1080, 1080 }
func (instagram) VideoCodec() string     { return "libx264" }
func (instagram) AudioCodec() string     { return "aac" }
func (instagram) AudioBitrate() string   { return "128k" }
func (instagram) CRF() int               { return 23 }
