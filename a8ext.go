// This file is part of a8ext.
//
// a8ext is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// a8ext is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with a8ext.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atari800ext/a8ext/atari"
	"github.com/atari800ext/a8ext/environment"
	"github.com/atari800ext/a8ext/extension"
	"github.com/atari800ext/a8ext/hacks"
	"github.com/atari800ext/a8ext/logger"
	"github.com/atari800ext/a8ext/luaext"
	"github.com/atari800ext/a8ext/memimage"
	"github.com/atari800ext/a8ext/menu"
	"github.com/atari800ext/a8ext/menu/imguimenu"
	"github.com/atari800ext/a8ext/menu/plainmenu"
	"github.com/atari800ext/a8ext/menu/tuimenu"
	"github.com/atari800ext/a8ext/modalflag"
	"github.com/atari800ext/a8ext/paths"
	"github.com/atari800ext/a8ext/prefs"
	"github.com/atari800ext/a8ext/sound"
	"github.com/atari800ext/a8ext/sound/sdlsound"
	"github.com/atari800ext/a8ext/statsview"
	"github.com/atari800ext/a8ext/tracefreq"
	"github.com/atari800ext/a8ext/viewer"
	"github.com/bradleyjkemp/memviz"
	"github.com/gdamore/tcell"
)

// SDL requires window and event handling to happen on the main thread
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch parses the command line and runs the selected mode. The return
// value is the exit status of the program.
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("DETECT", "LIST", "TRACE", "MENU", "STATE", "VIEW", "SOUND")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "DETECT":
		err = detect(md, output)
	case "LIST":
		err = list(md, output)
	case "TRACE":
		err = trace(md, output)
	case "MENU":
		err = configure(md, output)
	case "STATE":
		err = state(md, output)
	case "VIEW":
		err = view(md, output)
	case "SOUND":
		err = convertSound(md, output)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// options shared by the modes that create an extension hub
type common struct {
	log       *bool
	stats     *bool
	script    *string
	prefsFile *string
	prefs     *string
}

func addCommon(md *modalflag.Modes) common {
	return common{
		log:       md.AddBool("log", false, "echo log to stdout"),
		stats:     md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress)),
		script:    md.AddString("script", "", "comma separated list of Lua extension scripts"),
		prefsFile: md.AddString("prefsfile", paths.ResourcePath("preferences"), "preferences file. empty string for no preferences file"),
		prefs:     md.AddString("prefs", "", "preference values for this session (key::value; key::value)"),
	}
}

// session is the environment, hub and script engine of a single run
type session struct {
	env     *environment.Environment
	hub     *extension.Hub
	scripts *luaext.Engine

	// the stats server was launched by this session
	stats bool

	// preferences from the command line have been pushed
	pushed bool
}

func newSession(cmn common, output io.Writer) (*session, error) {
	if *cmn.log {
		logger.SetEcho(logger.NewColorizer(output))
	} else {
		logger.SetEcho(nil)
	}

	env := environment.NewEnvironment("", atari.NewMachine(nil))

	if *cmn.prefsFile != "" {
		dsk, err := prefs.NewDisk(*cmn.prefsFile)
		if err != nil {
			return nil, err
		}
		env.Prefs = dsk
	}

	hub, err := extension.NewHub(env)
	if err != nil {
		return nil, err
	}

	if err := hacks.RegisterAll(hub, env); err != nil {
		return nil, err
	}

	s := &session{
		env: env,
		hub: hub,
	}

	if *cmn.prefs != "" {
		prefs.PushCommandLineStack(*cmn.prefs)
		s.pushed = true
	}

	s.scripts = luaext.NewEngine(env, hub)
	env.Scripts = s.scripts

	if *cmn.script != "" {
		for _, fn := range strings.Split(*cmn.script, ",") {
			if err := s.scripts.RunFile(strings.TrimSpace(fn)); err != nil {
				s.close()
				return nil, err
			}
		}
	}

	// preferences are loaded after every extension has added its own
	if env.Prefs != nil {
		if err := os.MkdirAll(filepath.Dir(env.Prefs.Path()), 0o700); err != nil {
			logger.Log(env, "a8ext", err)
		}
		if err := env.Prefs.Load(true); err != nil {
			s.close()
			return nil, err
		}
	}

	if *cmn.stats {
		if err := statsview.Launch(output, statsview.DefaultAddress); err != nil {
			s.close()
			return nil, err
		}
		s.stats = true
	}

	return s, nil
}

func (s *session) close() {
	s.scripts.Close()
	if s.stats {
		statsview.Stop()
	}
	if s.pushed {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(s.env, "a8ext", "unused preferences: %s", unused)
		}
	}
}

// load a memory image and point the CPU at the run address if it has one
func (s *session) load(filename string) error {
	ld := memimage.NewLoader(filename)
	if err := ld.Load(); err != nil {
		return err
	}

	run, err := ld.Apply(s.env.Mem())
	if err != nil {
		return err
	}
	if run != 0 {
		s.env.Machine.CPU.PC = run
	}

	logger.Logf(s.env, "a8ext", "loaded %s (%s)", ld.Name, ld.Hash)
	return nil
}

// imageArg returns the single memory image argument of a mode
func imageArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("memory image required for %s mode", md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

func startSession(md *modalflag.Modes, output io.Writer, cmn common) (*session, error) {
	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return nil, err
	}

	fn, err := imageArg(md)
	if err != nil {
		return nil, err
	}

	s, err := newSession(cmn, output)
	if err != nil {
		return nil, err
	}
	if err := s.load(fn); err != nil {
		s.close()
		return nil, err
	}

	return s, nil
}

func detect(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	cmn := addCommon(md)

	s, err := startSession(md, output, cmn)
	if s == nil || err != nil {
		return err
	}
	defer s.close()

	ext := s.hub.AutoSelect()
	if ext == nil {
		fmt.Fprintf(output, "no extension found\n")
		return nil
	}

	fmt.Fprintf(output, "%s\n", ext.Name())
	inj := s.hub.Injection()
	if !inj.Filtered() {
		fmt.Fprintf(output, "code injections: none\n")
		return nil
	}

	fmt.Fprintf(output, "code injections: %d\n", inj.Len())
	for _, a := range inj.Addresses() {
		fmt.Fprintf(output, "  %04x\n", a)
	}

	return nil
}

func list(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	cmn := addCommon(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}
	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	s, err := newSession(cmn, output)
	if err != nil {
		return err
	}
	defer s.close()

	for i, ext := range s.hub.Extensions() {
		fmt.Fprintf(output, "%2d. %s\n", i+1, ext.Name())
	}

	return nil
}

func trace(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("The trace file is a monitor trace. Use - to read from stdin.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	var r io.Reader
	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("trace file required for %s mode", md)
	case 1:
		if md.GetArg(0) == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(md.GetArg(0))
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	m := tracefreq.NewMap()
	if err := m.Read(r); err != nil {
		return err
	}
	return m.Write(output)
}

func configure(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	cmn := addCommon(md)
	tui := md.AddBool("tui", false, "use full screen terminal menu")

	s, err := startSession(md, output, cmn)
	if s == nil || err != nil {
		return err
	}
	defer s.close()

	var driver menu.Driver
	if *tui {
		scr, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := scr.Init(); err != nil {
			return err
		}
		defer scr.Fini()
		driver = tuimenu.NewMenu(scr)
	} else {
		driver = plainmenu.NewMenu(os.Stdin, output)
	}

	s.hub.ChooseExtensionMenu(driver)

	return nil
}

// hubState is the part of the session shown by the STATE mode
type hubState struct {
	Active     string
	Extensions []string
	Injections []uint16
	Stats      extension.Stats
	CPU        atari.Registers
	Antic      atari.Antic
}

func state(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	cmn := addCommon(md)
	dot := md.AddBool("dot", false, "output state as a dot graph")

	s, err := startSession(md, output, cmn)
	if s == nil || err != nil {
		return err
	}
	defer s.close()

	s.hub.AutoSelect()

	st := hubState{
		Active:     extension.UnknownExtension,
		Injections: s.hub.Injection().Addresses(),
		Stats:      s.hub.Stats(),
		CPU:        s.env.Machine.CPU,
		Antic:      s.env.Machine.Antic,
	}
	if a := s.hub.Active(); a != nil {
		st.Active = a.Name()
	}
	for _, ext := range s.hub.Extensions() {
		st.Extensions = append(st.Extensions, ext.Name())
	}

	if *dot {
		memviz.Map(output, &st)
		return nil
	}

	fmt.Fprintf(output, "active: %s\n", st.Active)
	fmt.Fprintf(output, "injections: %d\n", len(st.Injections))
	fmt.Fprintf(output, "cpu: %s\n", st.CPU)
	fmt.Fprintf(output, "display list: %04x\n", st.Antic.Dlist)

	return nil
}

func view(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	cmn := addCommon(md)
	scale := md.AddInt("scale", 2, "window scaling")
	audio := md.AddBool("sound", true, "enable extension sounds")
	stdinMenu := md.AddBool("stdinmenu", false, "read extension menu choices from stdin instead of the window")

	s, err := startSession(md, output, cmn)
	if s == nil || err != nil {
		return err
	}
	defer s.close()

	vw, err := viewer.NewViewer(s.env, s.hub, plainmenu.NewMenu(os.Stdin, output), *scale)
	if err != nil {
		return err
	}
	defer vw.Destroy()

	if !*stdinMenu {
		mn := imguimenu.NewMenu(vw.Window(), vw.DrawScreen)
		mn.Forward = vw.Controls().HandleEvent
		vw.SetDriver(mn)
		defer mn.Destroy()
	}

	if *audio {
		plr, err := sdlsound.NewPlayer(s.env)
		if err != nil {
			logger.Log(s.env, "a8ext", err)
		} else {
			s.env.Sound = plr
			defer func() {
				s.env.Sound = nil
				plr.Destroy()
			}()
		}
	}

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Reset(os.Interrupt)

	vw.Frame = func() {
		select {
		case <-intChan:
			vw.Stop()
		default:
		}
	}

	fmt.Fprintf(output, "! TAB for the extension menu. hold CTRL to suspend acceleration\n")
	vw.Run()

	return nil
}

// convertSound prepares a sound file for use by an extension. The sound is
// decoded, resampled and saved as a mono 16 bit WAV file
func convertSound(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	md.AdditionalHelp("Converts a WAV or MP3 file to a mono 16 bit WAV file.")
	rate := md.AddInt("rate", 44100, "sample rate of the converted sound")
	out := md.AddString("out", "", "output filename. a unique name is chosen if not specified")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("sound file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *rate <= 0 {
		return fmt.Errorf("sample rate must be positive (%d)", *rate)
	}

	snd, err := sound.Load(md.GetArg(0))
	if err != nil {
		return err
	}
	snd = snd.Resample(*rate)

	fn := *out
	if fn == "" {
		base := strings.TrimSuffix(filepath.Base(md.GetArg(0)), filepath.Ext(md.GetArg(0)))
		fn = paths.UniqueFilename("sound", base) + ".wav"
	}

	if err := snd.SaveWAV(fn); err != nil {
		return err
	}

	fmt.Fprintf(output, "%s (%dHz, %s)\n", fn, snd.SampleRate, snd.Duration())
	return nil
}
