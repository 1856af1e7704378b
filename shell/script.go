package shell

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

// scriptCommands are the shell commands exposed to Lua, each as a global
// function named trailbot_<command>. Every function takes the rest of the
// command line as an optional string and returns the shell's reply, or a
// string starting with "ERROR: ".
var scriptCommands = []string{"new", "move", "undo", "show", "hint", "depth"}

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("trailbot_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

func scriptFunc(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		line := strings.TrimSpace(name + " " + L.OptString(1, ""))
		sc := getShell(L)
		r, err := sc.handle(line)
		if err != nil {
			log.Err(err).Str("cmd", name).Msg("error-executing-script-command")
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r))
		// number of results pushed
		return 1
	}
}

// gameOver tells a script whether the current game is finished.
func gameOver(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LBool(sc.board != nil && !sc.IsPlaying()))
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (string, error) {
	if len(cmd.args) == 0 {
		return "", errors.New("need arguments for script")
	}
	if sc.scripting {
		return "", errors.New("cannot run a script from inside a script")
	}
	sc.scripting = true
	defer func() { sc.scripting = false }()

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal("trailbot_shell", lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("trailbot_"+name, L.NewFunction(scriptFunc(name)))
	}
	L.SetGlobal("trailbot_over", L.NewFunction(gameOver))

	if err := L.DoFile(cmd.args[0]); err != nil {
		log.Err(err).Str("file", cmd.args[0]).Msg("script-failed")
		return "", err
	}
	if sc.board == nil {
		return "", nil
	}
	return sc.display(), nil
}
