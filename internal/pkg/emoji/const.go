package emoji

const (
	Rocket                      string = "\U0001F680"           //🚀
	WavingHandSign              string = "\U0001F44B"           //👋
	TwistedRighwardsArrows      string = "\U0001F500"           //🔀
	PageFacingUp                string = "\U0001F4C4"           //📄
	Package                     string = "\U0001F4E6"           //📦
	Key                         string = "\U0001F511"           //🔑
	LeftPointingMagnifyingGlass string = "\U0001F50D"           //🔍
	Eyes                        string = "\U0001F440"           //👀
	CheckMarkButton             string = "\U00002705"           //✅
	CrossMark                   string = "\U0000274C"           // ❌
	Gear                        string = "⚙️"         // ⚙️
	Warning                     string = "\U000026A0\U0000FE0F" // ⚠️
	Exclamation                 string = "\U00002757"           //❗

	SpinnerCheckMark string = "\x1b[1;92m ✓ \x1b[0m" //✓
	SpinnerCrossMark string = "\x1b[1;91m ✗ \x1b[0m" //✗
)
